// Package api serves read-only queries over the stored users and events.
//
// @title ChainActivity API
// @version 1.0
// @description Query API for on-chain activity aggregated per address
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api

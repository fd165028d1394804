package logger

import (
	"sync"
	"testing"

	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type fakeLoggingConfig struct {
	defaultLevel string
	development  bool
	levels       map[string]string
}

func (f fakeLoggingConfig) GetComponentLevel(component string) string {
	if level, ok := f.levels[component]; ok {
		return level
	}
	return f.GetDefaultLevel()
}

func (f fakeLoggingConfig) GetDefaultLevel() string {
	if f.defaultLevel == "" {
		return "info"
	}
	return f.defaultLevel
}

func (f fakeLoggingConfig) IsDevelopment() bool { return f.development }

func enabled(l *Logger, level zapcore.Level) bool {
	return l.Desugar().Core().Enabled(level)
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, dev := range []bool{false, true} {
			l, err := NewLogger(level, dev)
			require.NoError(t, err, "level %s dev %v", level, dev)
			require.Equal(t, level, l.GetLevel())
			require.Empty(t, l.GetComponent())
		}
	}

	_, err := NewLogger("verbose", false)
	require.Error(t, err)
}

func TestComponentLevelsFromConfig(t *testing.T) {
	cfg := fakeLoggingConfig{
		defaultLevel: "warn",
		levels:       map[string]string{common.ComponentChainReader: "debug"},
	}

	reader := NewComponentLoggerFromConfig(common.ComponentChainReader, cfg)
	require.Equal(t, common.ComponentChainReader, reader.GetComponent())
	require.True(t, enabled(reader, zapcore.DebugLevel))

	agg := NewComponentLoggerFromConfig(common.ComponentAggregator, cfg)
	require.Equal(t, "warn", agg.GetLevel())
	require.False(t, enabled(agg, zapcore.InfoLevel))
	require.True(t, enabled(agg, zapcore.WarnLevel))

	store := NewComponentLoggerFromConfig(common.ComponentStore, nil)
	require.Equal(t, "info", store.GetLevel())
}

func TestNewComponentLogger_PanicsOnInvalidLevel(t *testing.T) {
	require.Panics(t, func() { NewComponentLogger(common.ComponentScanner, "loud", false) })
}

func TestWithComponent_SharesLevel(t *testing.T) {
	root, err := NewLogger("info", false)
	require.NoError(t, err)

	child := root.WithComponent(common.ComponentReport)
	require.Equal(t, common.ComponentReport, child.GetComponent())
	require.False(t, enabled(child, zapcore.DebugLevel))

	require.NoError(t, root.SetLevel("debug"))
	require.Equal(t, "debug", child.GetLevel())
	require.True(t, enabled(child, zapcore.DebugLevel))

	require.Error(t, child.SetLevel("nope"))
	require.Equal(t, "debug", root.GetLevel())
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()
	require.NotPanics(t, func() {
		l.Infow("discarded", "k", "v")
		l.WithComponent(common.ComponentAPI).Error("discarded")
	})
	require.False(t, enabled(l, zapcore.ErrorLevel))
}

func TestDefaultLogger(t *testing.T) {
	first := GetDefaultLogger()
	require.Same(t, first, GetDefaultLogger())

	nop := NewNopLogger()
	SetDefaultLogger(nop)
	t.Cleanup(func() { SetDefaultLogger(first) })
	require.Same(t, nop, GetDefaultLogger())
}

func TestLogger_ConcurrentChildren(t *testing.T) {
	root := NewNopLogger()

	var wg sync.WaitGroup
	for _, component := range []string{common.ComponentScanner, common.ComponentNormalizer, common.ComponentStore} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := root.WithComponent(component)
			for i := range 100 {
				child.Debugw("tick", "i", i)
			}
		}()
	}
	wg.Wait()
}

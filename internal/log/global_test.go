package log

import (
	"sync"
	"testing"
)

func TestSetDefaultLogger(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	custom := Development()
	SetDefaultLogger(custom)

	if DefaultLogger() != custom {
		t.Error("DefaultLogger did not return the custom logger")
	}
}

func TestDefaultLogger_LazyInit(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	defaultLogger = nil

	var wg sync.WaitGroup
	got := make([]*Logger, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = DefaultLogger()
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatal("concurrent callers received different default loggers")
		}
	}
	if got[0].Config().Level != LevelWarn {
		t.Errorf("lazy default level = %v, want warn", got[0].Config().Level)
	}
}

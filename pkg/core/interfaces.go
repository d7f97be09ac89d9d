package core

// Logger interface for raytracer logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{})   {}
func (NopLogger) Infof(format string, args ...interface{})    {}
func (NopLogger) Noticef(format string, args ...interface{})  {}
func (NopLogger) Warningf(format string, args ...interface{}) {}
func (NopLogger) Errorf(format string, args ...interface{})   {}

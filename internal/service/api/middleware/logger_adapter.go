package middleware

import (
	"io"

	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo 내부 로그(github.com/labstack/gommon/log.Logger)를 애플리케이션 로거로 보내는 어댑터입니다.
type Logger struct {
	*applog.Logger
}

var levelToEcho = map[applog.Level]log.Lvl{
	applog.DebugLevel: log.DEBUG,
	applog.TraceLevel: log.DEBUG,
	applog.InfoLevel:  log.INFO,
	applog.WarnLevel:  log.WARN,
	applog.ErrorLevel: log.ERROR,
}

var levelFromEcho = map[log.Lvl]applog.Level{
	log.DEBUG: applog.DebugLevel,
	log.INFO:  applog.InfoLevel,
	log.WARN:  applog.WarnLevel,
	log.ERROR: applog.ErrorLevel,
}

func (l Logger) Output() io.Writer { return l.Logger.Out }

func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }

// Prefix, Header 기능은 사용하지 않는다.
func (l Logger) Prefix() string { return "" }
func (l Logger) SetPrefix(string) {}
func (l Logger) SetHeader(string) {}

// Level 대응하는 Echo 레벨이 없으면(Panic, Fatal) OFF를 반환합니다.
func (l Logger) Level() log.Lvl {
	if lvl, ok := levelToEcho[l.Logger.GetLevel()]; ok {
		return lvl
	}
	return log.OFF
}

// SetLevel log.OFF는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	if level, ok := levelFromEcho[lvl]; ok {
		l.Logger.SetLevel(level)
	}
}

func (l Logger) Print(i ...interface{}) { l.Logger.Print(i...) }
func (l Logger) Printf(format string, args ...interface{}) { l.Logger.Printf(format, args...) }
func (l Logger) Printj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Print() }

func (l Logger) Debug(i ...interface{}) { l.Logger.Debug(i...) }
func (l Logger) Debugf(format string, args ...interface{}) { l.Logger.Debugf(format, args...) }
func (l Logger) Debugj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...interface{}) { l.Logger.Info(i...) }
func (l Logger) Infof(format string, args ...interface{}) { l.Logger.Infof(format, args...) }
func (l Logger) Infoj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...interface{}) { l.Logger.Warn(i...) }
func (l Logger) Warnf(format string, args ...interface{}) { l.Logger.Warnf(format, args...) }
func (l Logger) Warnj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...interface{}) { l.Logger.Error(i...) }
func (l Logger) Errorf(format string, args ...interface{}) { l.Logger.Errorf(format, args...) }
func (l Logger) Errorj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Error() }

func (l Logger) Fatal(i ...interface{}) { l.Logger.Fatal(i...) }
func (l Logger) Fatalf(format string, args ...interface{}) { l.Logger.Fatalf(format, args...) }
func (l Logger) Fatalj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Fatal() }

func (l Logger) Panic(i ...interface{}) { l.Logger.Panic(i...) }
func (l Logger) Panicf(format string, args ...interface{}) { l.Logger.Panicf(format, args...) }
func (l Logger) Panicj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Panic() }

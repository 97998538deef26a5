package http

var (
	AccessLogger   = accessLogger
	PanicRecoverer = panicRecoverer
)

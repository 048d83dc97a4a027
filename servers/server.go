package servers

// Server は起動と停止を持つ常駐サービスです。
// BotとWebServerがこれを満たします。
type Server interface {
	Name() string
	Start() error
	Stop()
}

package dialog

// DefaultPriority порядок опроса стартовых диалогов, когда активного диалога нет.
var DefaultPriority = []string{TagWfh, TagHelp, TagWhoAmI, TagSetMyName}

// NewDefaultRegistry создаёт реестр со всеми диалогами бота
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(WfhKind())
	r.Register(HelpKind())
	r.Register(WhoAmIKind())
	r.Register(SetMyNameKind())
	return r
}

package component

// AIScript names the scripted behavior driving a sentinel. The compiled
// script runtime lives in the AI system, keyed by entity; entity state
// stays plain data.
type AIScript struct {
	Name string
}

var AIScriptComponent = NewComponent[AIScript]()

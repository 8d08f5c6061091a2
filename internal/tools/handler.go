package tools

// Generator produces text via the backing LLM. It decouples the LLM-backed
// tools from the client implementation so they stay testable with fakes.
type Generator func(prompt, system string) (string, error)

// Default is the process-wide registry used by the CLI. Tests and library
// consumers construct their own via NewRegistry.
var Default = NewRegistry()

// Init fills the registry with the built-in local tools. LLM-backed tools
// get their text generation through gen.
func Init(r *Registry, gen Generator) {
	r.Register(ListFiles)
	r.Register(ReadFile)
	r.Register(WriteFile)
	r.Register(RunShell)
	r.Register(SearchFiles)
	r.Register(SendEmail)
	r.Register(WebsiteText)
	r.Register(NewGenerateTodo(gen))
	r.Register(NewGenerateAndSaveTodo(gen))
	r.Register(NewReadAndSummarize(gen))
	r.Register(NewGenerateAndEmail(gen))
	r.Register(SearchAndSave)
}

package sitecmd

import (
	"github.com/goliatone/go-site/internal/commands"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers; go-command's dispatcher and registry both fit it.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterSiteCommands.
type HandlerSet struct {
	Accessibility *AuditAccessibilityHandler
	Links         *CheckLinksHandler
	ActionBox     *CheckActionBoxHandler
	BuildIndex    *BuildIndexHandler
}

// Handlers lists the set in registration order.
func (s *HandlerSet) Handlers() []any {
	return []any{s.Accessibility, s.Links, s.ActionBox, s.BuildIndex}
}

// RegisterSiteCommands builds the lint and index handlers and registers them
// with reg when one is supplied.
func RegisterSiteCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	set := &HandlerSet{
		Accessibility: NewAuditAccessibilityHandler(deps, commands.CommandLogger(provider, "lint")),
		Links:         NewCheckLinksHandler(deps, commands.CommandLogger(provider, "lint")),
		ActionBox:     NewCheckActionBoxHandler(deps, commands.CommandLogger(provider, "lint")),
		BuildIndex:    NewBuildIndexHandler(deps, commands.CommandLogger(provider, "search")),
	}
	if reg == nil {
		return set, nil
	}
	for _, handler := range set.Handlers() {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Defaults returns the lint and index messages configured by deps.Config.
func Defaults(deps Dependencies) (AuditAccessibilityCommand, CheckLinksCommand, CheckActionBoxCommand) {
	cfg := deps.Config.Lint
	return AuditAccessibilityCommand{Dir: cfg.Dir, ReportPath: cfg.ReportPath},
		CheckLinksCommand{Dir: cfg.Dir, MinInsightLinks: cfg.MinInsightLinks, MinToolLinks: cfg.MinToolLinks},
		CheckActionBoxCommand{Dir: cfg.Dir}
}

package main

import (
	"context"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-site/internal/commands/sitecmd"
)

// dispatchRegistry subscribes site handlers on the go-command dispatcher and
// remembers the subscriptions so a run can release them.
type dispatchRegistry struct {
	unsubscribe []func()
}

func (r *dispatchRegistry) RegisterCommand(handler any) error {
	switch h := handler.(type) {
	case *sitecmd.AuditAccessibilityHandler:
		sub := dispatcher.SubscribeCommand[sitecmd.AuditAccessibilityCommand](h)
		r.unsubscribe = append(r.unsubscribe, sub.Unsubscribe)
	case *sitecmd.CheckLinksHandler:
		sub := dispatcher.SubscribeCommand[sitecmd.CheckLinksCommand](h)
		r.unsubscribe = append(r.unsubscribe, sub.Unsubscribe)
	case *sitecmd.CheckActionBoxHandler:
		sub := dispatcher.SubscribeCommand[sitecmd.CheckActionBoxCommand](h)
		r.unsubscribe = append(r.unsubscribe, sub.Unsubscribe)
	case *sitecmd.BuildIndexHandler:
		sub := dispatcher.SubscribeCommand[sitecmd.BuildIndexCommand](h)
		r.unsubscribe = append(r.unsubscribe, sub.Unsubscribe)
	default:
		return fmt.Errorf("sitectl: unsupported handler %T", handler)
	}
	return nil
}

func (r *dispatchRegistry) Close() {
	for _, fn := range r.unsubscribe {
		fn()
	}
	r.unsubscribe = nil
}

// dispatch registers the site handlers for deps, sends msg and tears the
// subscriptions down again.
func dispatch[T command.Message](ctx context.Context, a *app, deps sitecmd.Dependencies, msg T) error {
	reg := &dispatchRegistry{}
	defer reg.Close()
	if _, err := sitecmd.RegisterSiteCommands(reg, deps, a.provider); err != nil {
		return err
	}
	return dispatcher.Dispatch(ctx, msg)
}

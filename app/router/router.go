// Package router dispatches incoming messages to the first handler whose
// predicate matches. Middleware is applied once, when a route is registered.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "nuclight.org/feeds-tg-bot/pkg/entities"
)

type HandlerFunc func(ctx context.Context, msg e.Message) (e.Answer, error)

type Middleware func(next HandlerFunc) HandlerFunc

type MatchFunc func(msg e.Message) bool

var ErrNoRoute = errors.New("no route matches message")

type route struct {
	name    string
	match   MatchFunc
	handler HandlerFunc
}

type Router struct {
	middleware []Middleware
	routes     []route
}

// New creates a router. Middleware wraps every handler registered afterwards,
// the first one being the outermost.
func New(mw ...Middleware) *Router {
	return &Router{middleware: mw}
}

func (r *Router) Handle(name string, match MatchFunc, h HandlerFunc) {
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}

	r.routes = append(r.routes, route{name: name, match: match, handler: h})
}

func (r *Router) HandleMessage(ctx context.Context, msg e.Message) (e.Answer, error) {
	for _, rt := range r.routes {
		if !rt.match(msg) {
			continue
		}

		ans, err := rt.handler(ctx, msg)
		if err != nil {
			return ans, fmt.Errorf("route %s: %w", rt.name, err)
		}

		return ans, nil
	}

	return e.Answer{Kind: e.AnswerKindNone}, ErrNoRoute
}

// Text matches a message whose text equals s exactly.
func Text(s string) MatchFunc {
	return func(msg e.Message) bool {
		return msg.Text == s
	}
}

// Command matches bot commands by name, case-insensitively.
func Command(names ...string) MatchFunc {
	return func(msg e.Message) bool {
		for _, name := range names {
			if strings.EqualFold(msg.Command, name) {
				return msg.IsCommand()
			}
		}
		return false
	}
}

func Any() MatchFunc {
	return func(e.Message) bool {
		return true
	}
}

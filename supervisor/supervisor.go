// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package supervisor

import (
	"errors"
	"reflect"
	"time"

	gerrors "github.com/tochemey/coffeehouse/errors"
)

// Strategy represents the type of supervision strategy used by an actor's supervisor.
type Strategy int

const (
	// OneForOneStrategy applies the directive only to the failing child.
	OneForOneStrategy Strategy = iota
	// OneForAllStrategy applies Restart and Stop directives to every sibling
	// of the failing child. Use it when children share state and cannot
	// survive the loss of one of them.
	OneForAllStrategy
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case OneForOneStrategy:
		return "OneForOne"
	case OneForAllStrategy:
		return "OneForAll"
	default:
		return ""
	}
}

// Directive defines the supervisor directive
//
// It represents the action that a supervisor takes when a child actor fails
// during message processing:
//
//   - StopDirective: stop the failing actor; its watchers receive Terminated.
//   - ResumeDirective: drop the failing message and keep the actor state.
//   - RestartDirective: run PostStop then PreStart on the same actor, keeping its mailbox.
//   - EscalateDirective: fail the supervisor itself with the same cause.
type Directive int

const (
	// StopDirective indicates that when an actor fails, the supervisor should immediately stop
	// the actor.
	StopDirective Directive = iota
	// ResumeDirective indicates that when an actor fails, the supervisor should resume the actor's
	// operation without restarting it.
	ResumeDirective
	// RestartDirective indicates that when an actor fails, the supervisor should restart the actor,
	// resetting its internal state.
	RestartDirective
	// EscalateDirective indicates that when an actor fails, the supervisor should escalate the failure
	// to its own parent.
	EscalateDirective
)

// String returns the string representation of the directive
func (d Directive) String() string {
	switch d {
	case StopDirective:
		return "Stop"
	case ResumeDirective:
		return "Resume"
	case RestartDirective:
		return "Restart"
	case EscalateDirective:
		return "Escalate"
	default:
		return ""
	}
}

// Failure describes a child failure as seen by its supervisor.
type Failure struct {
	// Name is the failing child's name, unique among its siblings
	Name string
	// Path is the failing child's full path
	Path string
	// Err is the failure cause
	Err error
	// Message is the message being processed when the failure happened.
	// It is nil when the failure happened outside of message processing.
	Message any
}

// Matcher selects the failures a rule applies to
type Matcher func(failure *Failure) bool

// Recovery is a side effect executed by the supervisor before the directive
// of its rule is applied. It runs on the supervisor's own goroutine.
type Recovery func(failure *Failure)

// Rule maps the failures selected by a Matcher to a Directive
type Rule struct {
	matcher   Matcher
	directive Directive
	recovery  Recovery
}

// Directive returns the rule directive
func (r Rule) Directive() Directive {
	return r.directive
}

// SupervisorOption defines the various options to apply to a given Supervisor
type SupervisorOption func(*Supervisor)

// WithStrategy sets the supervisor strategy
func WithStrategy(strategy Strategy) SupervisorOption {
	return func(s *Supervisor) {
		s.strategy = strategy
	}
}

// WithRule appends a rule to the decision table. Rules are evaluated in the
// order they were added and the first matching rule wins. The optional
// recoveries run, in order, before the directive is applied.
func WithRule(matcher Matcher, directive Directive, recoveries ...Recovery) SupervisorOption {
	return func(s *Supervisor) {
		s.rules = append(s.rules, Rule{
			matcher:   matcher,
			directive: directive,
			recovery:  chain(recoveries),
		})
	}
}

// WithDirective maps the concrete type of err to the given directive.
// Wrapped errors match when any error in their chain has the same type.
func WithDirective(err error, directive Directive) SupervisorOption {
	return WithRule(sameTypeAs(err), directive)
}

// WithAnyErrorDirective appends a catch-all rule. Rules added after it are never reached.
func WithAnyErrorDirective(directive Directive) SupervisorOption {
	return WithRule(Any(), directive)
}

// WithRetry bounds the Restart directive: a child whose restart fails is
// retried up to maxRetries times, waiting timeout between attempts, before
// it is stopped.
func WithRetry(maxRetries uint32, timeout time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.maxRetries = maxRetries
		s.timeout = timeout
	}
}

// Supervisor defines how a parent reacts when a child actor fails.
//
// It holds an ordered table of rules. Each rule selects failures with a
// Matcher, names the Directive to apply and can carry a Recovery side effect.
// A failure no rule matches is escalated.
//
// A Supervisor is immutable once created and is safe for concurrent use.
type Supervisor struct {
	strategy   Strategy
	maxRetries uint32
	timeout    time.Duration
	rules      []Rule
}

// NewSupervisor creates a supervisor with the given options.
// Without any rule every failure is escalated.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		strategy: OneForOneStrategy,
		timeout:  -1,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decide evaluates the rules against the given failure and returns the
// directive to apply with its recovery, which may be nil.
func (s *Supervisor) Decide(failure *Failure) (Directive, Recovery) {
	for _, rule := range s.rules {
		if rule.matcher(failure) {
			return rule.directive, rule.recovery
		}
	}
	return EscalateDirective, nil
}

// Strategy returns the configured supervision strategy.
func (s *Supervisor) Strategy() Strategy {
	return s.strategy
}

// MaxRetries returns the restart retry budget used with RestartDirective.
func (s *Supervisor) MaxRetries() uint32 {
	return s.maxRetries
}

// Timeout returns the wait between restart attempts.
func (s *Supervisor) Timeout() time.Duration {
	return s.timeout
}

// Rules returns a copy of the decision table
func (s *Supervisor) Rules() []Rule {
	rules := make([]Rule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

// Any matches every failure
func Any() Matcher {
	return func(*Failure) bool { return true }
}

// OfType matches failures whose error chain contains an error of type T
func OfType[T error]() Matcher {
	return func(failure *Failure) bool {
		var target T
		return errors.As(failure.Err, &target)
	}
}

// ChildNamed matches failures of the child with the given name
func ChildNamed(name string) Matcher {
	return func(failure *Failure) bool {
		return failure.Name == name
	}
}

// AnyOf matches when at least one of the matchers does
func AnyOf(matchers ...Matcher) Matcher {
	return func(failure *Failure) bool {
		for _, matcher := range matchers {
			if matcher(failure) {
				return true
			}
		}
		return false
	}
}

// AllOf matches when every matcher does
func AllOf(matchers ...Matcher) Matcher {
	return func(failure *Failure) bool {
		for _, matcher := range matchers {
			if !matcher(failure) {
				return false
			}
		}
		return true
	}
}

func sameTypeAs(err error) Matcher {
	expected := errorType(err)
	if expected == errorType(new(gerrors.AnyError)) {
		return Any()
	}

	return func(failure *Failure) bool {
		for current := failure.Err; current != nil; current = errors.Unwrap(current) {
			if errorType(current) == expected {
				return true
			}
		}
		return false
	}
}

func chain(recoveries []Recovery) Recovery {
	switch len(recoveries) {
	case 0:
		return nil
	case 1:
		return recoveries[0]
	}
	return func(failure *Failure) {
		for _, recovery := range recoveries {
			if recovery != nil {
				recovery(failure)
			}
		}
	}
}

// errorType returns the string representation of an error's type using reflection
func errorType(err error) string {
	if err == nil {
		return "nil"
	}

	rtype := reflect.TypeOf(err)
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}

	return rtype.String()
}

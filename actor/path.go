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

package actor

import (
	"regexp"
	"strings"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/internal/validation"
)

const (
	pathSeparator = "/"
	userGuardian  = "user"
)

var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*$`)

// Path represents the logical path of an actor within an actor system,
// for instance coffee-house/user/coffee-house/waiter.
type Path interface {
	Name() string
	Parent() Path
	String() string
	System() string
	Equals(other Path) bool
}

type path struct {
	name   string
	system string
	parent Path
	str    string
}

var _ Path = (*path)(nil)

func newRootPath(system string) *path {
	return &path{
		name:   userGuardian,
		system: system,
		str:    strings.Join([]string{system, userGuardian}, pathSeparator),
	}
}

// child returns the path of the named child
func (x *path) child(name string) *path {
	return &path{
		name:   name,
		system: x.system,
		parent: x,
		str:    strings.Join([]string{x.str, name}, pathSeparator),
	}
}

func (x *path) Name() string {
	if x == nil {
		return ""
	}
	return x.name
}

func (x *path) Parent() Path {
	if x == nil || x.parent == nil {
		return nil
	}
	return x.parent
}

func (x *path) String() string {
	if x == nil {
		return ""
	}
	return x.str
}

func (x *path) System() string {
	if x == nil {
		return ""
	}
	return x.system
}

func (x *path) Equals(other Path) bool {
	if x == nil || other == nil {
		return false
	}
	return x.str == other.String()
}

func validateName(name string) error {
	return validation.NewPatternValidator(validNamePattern, name, gerrors.ErrInvalidActorName).Validate()
}

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

package coffeehouse

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Coffee is a coffee variant served in the house
type Coffee int

const (
	Akkaccino Coffee = iota
	CaffeJava
	MochaPlay
)

var coffeeNames = map[Coffee]string{
	Akkaccino: "Akkaccino",
	CaffeJava: "CaffeJava",
	MochaPlay: "MochaPlay",
}

// Coffees returns all the coffee variants
func Coffees() []Coffee {
	return []Coffee{Akkaccino, CaffeJava, MochaPlay}
}

// String implements fmt.Stringer
func (c Coffee) String() string {
	if name, ok := coffeeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Coffee(%d)", int(c))
}

// ParseCoffee returns the coffee variant given its name or its first letter, case insensitive
func ParseCoffee(s string) (Coffee, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	for _, coffee := range Coffees() {
		name := strings.ToLower(coffee.String())
		if value == name || (len(value) == 1 && value[0] == name[0]) {
			return coffee, nil
		}
	}
	return 0, fmt.Errorf("unknown coffee %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Coffee) UnmarshalText(text []byte) error {
	coffee, err := ParseCoffee(string(text))
	if err != nil {
		return err
	}
	*c = coffee
	return nil
}

// RandomOther returns a coffee variant other than the given one
func RandomOther(coffee Coffee) Coffee {
	others := make([]Coffee, 0, len(coffeeNames)-1)
	for _, other := range Coffees() {
		if other != coffee {
			others = append(others, other)
		}
	}
	return others[rand.IntN(len(others))]
}

// Limit is a caffeine limit, a number of coffees
type Limit int

// Unlimited is the limit that is never reached
const Unlimited Limit = math.MaxInt

const unlimited = "unlimited"

// ParseLimit parses a positive number of coffees or "unlimited"
func ParseLimit(s string) (Limit, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == unlimited {
		return Unlimited, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid caffeine limit %q: must be a number or %q", s, unlimited)
	}

	if limit <= 0 {
		return 0, fmt.Errorf("invalid caffeine limit %d: must be positive", limit)
	}
	return Limit(limit), nil
}

// String implements fmt.Stringer
func (l Limit) String() string {
	if l == Unlimited {
		return unlimited
	}
	return strconv.Itoa(int(l))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Limit) UnmarshalText(text []byte) error {
	limit, err := ParseLimit(string(text))
	if err != nil {
		return err
	}
	*l = limit
	return nil
}

// LimitPolicy defines how the house caffeine limit is enforced
type LimitPolicy int

const (
	// PerGuestLimit compares the coffees served to each guest with the limit
	PerGuestLimit LimitPolicy = iota
	// SharedLimit compares the coffees served to all the guests with the limit
	SharedLimit
)

// String implements fmt.Stringer
func (p LimitPolicy) String() string {
	switch p {
	case PerGuestLimit:
		return "per-guest"
	case SharedLimit:
		return "shared"
	default:
		return fmt.Sprintf("LimitPolicy(%d)", int(p))
	}
}

// ParseLimitPolicy parses "per-guest" or "shared"
func ParseLimitPolicy(s string) (LimitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-guest":
		return PerGuestLimit, nil
	case "shared":
		return SharedLimit, nil
	default:
		return 0, fmt.Errorf("unknown limit policy %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *LimitPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseLimitPolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

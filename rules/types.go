// Package rules holds the typed firewall rule model and the lowering of the
// grammar parse tree into it.
package rules

import "fmt"

// Action is what a rule does with matching traffic.
type Action int

const (
	ActionAllow Action = iota
	ActionDeny
	ActionReject
	ActionLimit
)

func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "allow"
	case ActionDeny:
		return "deny"
	case ActionReject:
		return "reject"
	case ActionLimit:
		return "limit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalText serializes the action as its keyword.
func (a Action) MarshalText() ([]byte, error) {
	switch a {
	case ActionAllow, ActionDeny, ActionReject, ActionLimit:
		return []byte(a.String()), nil
	}
	return nil, &SemanticError{Message: fmt.Sprintf("invalid action: %d", int(a))}
}

func (a *Action) UnmarshalText(text []byte) error {
	action, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// ParseAction maps an action keyword to its Action. Anything outside the
// four keywords is an error, never a default.
func ParseAction(text string) (Action, error) {
	switch text {
	case "allow":
		return ActionAllow, nil
	case "deny":
		return ActionDeny, nil
	case "reject":
		return ActionReject, nil
	case "limit":
		return ActionLimit, nil
	default:
		return 0, &SemanticError{Message: fmt.Sprintf("invalid action: %s", text)}
	}
}

// Direction is the traffic direction of an address rule.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case DirectionIn, DirectionOut:
		return []byte(d.String()), nil
	}
	return nil, &SemanticError{Message: fmt.Sprintf("invalid direction: %d", int(d))}
}

func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// ParseDirection maps a direction keyword to its Direction.
func ParseDirection(text string) (Direction, error) {
	switch text {
	case "in":
		return DirectionIn, nil
	case "out":
		return DirectionOut, nil
	default:
		return 0, &SemanticError{Message: fmt.Sprintf("invalid direction: %s", text)}
	}
}

// Protocol is the transport protocol of an address rule.
type Protocol int

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
	ProtocolAny
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	case ProtocolAny:
		return "any"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

func (p Protocol) MarshalText() ([]byte, error) {
	switch p {
	case ProtocolTCP, ProtocolUDP, ProtocolAny:
		return []byte(p.String()), nil
	}
	return nil, &SemanticError{Message: fmt.Sprintf("invalid protocol: %d", int(p))}
}

func (p *Protocol) UnmarshalText(text []byte) error {
	proto, err := ParseProtocol(string(text))
	if err != nil {
		return err
	}
	*p = proto
	return nil
}

// ParseProtocol maps a protocol keyword to its Protocol.
func ParseProtocol(text string) (Protocol, error) {
	switch text {
	case "tcp":
		return ProtocolTCP, nil
	case "udp":
		return ProtocolUDP, nil
	case "any":
		return ProtocolAny, nil
	default:
		return 0, &SemanticError{Message: fmt.Sprintf("unsupported protocol: %s", text)}
	}
}

// Addr is an address endpoint of a rule: one of the three keywords or a
// literal IP/CIDR kept exactly as written.
type Addr interface {
	addr()
	String() string
}

// AddrAny matches any address.
type AddrAny struct{}

// AddrInternal matches internal networks.
type AddrInternal struct{}

// AddrExternal matches external networks.
type AddrExternal struct{}

// IPCidr holds address or CIDR text verbatim. Octets and prefix length are
// not validated beyond the character class the grammar accepts.
type IPCidr struct {
	Text string
}

func (AddrAny) addr()      {}
func (AddrInternal) addr() {}
func (AddrExternal) addr() {}
func (IPCidr) addr()       {}

func (AddrAny) String() string      { return "any" }
func (AddrInternal) String() string { return "internal" }
func (AddrExternal) String() string { return "external" }
func (a IPCidr) String() string     { return a.Text }

// ParseAddr maps address text to its Addr. The three keywords are matched
// first; everything else is kept as a literal IPCidr.
func ParseAddr(text string) Addr {
	switch text {
	case "any":
		return AddrAny{}
	case "internal":
		return AddrInternal{}
	case "external":
		return AddrExternal{}
	default:
		return IPCidr{Text: text}
	}
}

// Rule is a single parsed firewall rule, either a named-service rule or an
// address rule. The set of implementations is closed.
type Rule interface {
	rule()
}

// ServiceRule allows or denies a named service.
type ServiceRule struct {
	Action  Action
	Service string
}

func (ServiceRule) rule() {}

// AddressRule describes traffic by endpoint, interface, port and protocol.
// Every field except Action is optional; the grammar guarantees at least one
// of From, To, Port or Proto is present.
type AddressRule struct {
	Action    Action
	Direction *Direction
	Interface *string
	From      Addr
	To        Addr
	Port      *uint16
	Proto     *Protocol
}

func (AddressRule) rule() {}

// Ruleset is an ordered rule document. Order matches the source lines that
// produced it.
type Ruleset []Rule

package rules

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// serviceJSON and addressJSON are the wire shapes of the two rule variants.
// The "type" field discriminates; absent optional fields are omitted.
type serviceJSON struct {
	Type    string `json:"type"`
	Action  Action `json:"action"`
	Service string `json:"service"`
}

type addressJSON struct {
	Type      string     `json:"type"`
	Action    Action     `json:"action"`
	Direction *Direction `json:"direction,omitempty"`
	Interface *string    `json:"interface,omitempty"`
	From      *string    `json:"from,omitempty"`
	To        *string    `json:"to,omitempty"`
	Port      *uint16    `json:"port,omitempty"`
	Proto     *Protocol  `json:"proto,omitempty"`
}

func (r ServiceRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(serviceJSON{Type: "service", Action: r.Action, Service: r.Service})
}

func (r AddressRule) MarshalJSON() ([]byte, error) {
	out := addressJSON{
		Type:      "address",
		Action:    r.Action,
		Direction: r.Direction,
		Interface: r.Interface,
		Port:      r.Port,
		Proto:     r.Proto,
	}
	if r.From != nil {
		s := r.From.String()
		out.From = &s
	}
	if r.To != nil {
		s := r.To.String()
		out.To = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a rule array, dispatching each element on its type
// tag. Keywords pass back through the same closed-set parsers used by
// lowering, so a decoded document is field-for-field equal to the one that
// produced it or the decode fails.
func (rs *Ruleset) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Ruleset, 0, len(raw))
	for _, msg := range raw {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &tag); err != nil {
			return err
		}
		switch tag.Type {
		case "service":
			var node serviceJSON
			if err := json.Unmarshal(msg, &node); err != nil {
				return err
			}
			out = append(out, ServiceRule{Action: node.Action, Service: node.Service})
		case "address":
			var node addressJSON
			if err := json.Unmarshal(msg, &node); err != nil {
				return err
			}
			rule := AddressRule{
				Action:    node.Action,
				Direction: node.Direction,
				Interface: node.Interface,
				Port:      node.Port,
				Proto:     node.Proto,
			}
			if node.From != nil {
				rule.From = ParseAddr(*node.From)
			}
			if node.To != nil {
				rule.To = ParseAddr(*node.To)
			}
			out = append(out, rule)
		default:
			return fmt.Errorf("unknown rule type: %q", tag.Type)
		}
	}
	*rs = out
	return nil
}

// MarshalYAML renders the same shape as the JSON form. YAML output is
// one-way; the JSON form is the round-trip format.
func (r ServiceRule) MarshalYAML() (interface{}, error) {
	return yaml.MapSlice{
		{Key: "type", Value: "service"},
		{Key: "action", Value: r.Action.String()},
		{Key: "service", Value: r.Service},
	}, nil
}

func (r AddressRule) MarshalYAML() (interface{}, error) {
	doc := yaml.MapSlice{
		{Key: "type", Value: "address"},
		{Key: "action", Value: r.Action.String()},
	}
	if r.Direction != nil {
		doc = append(doc, yaml.MapItem{Key: "direction", Value: r.Direction.String()})
	}
	if r.Interface != nil {
		doc = append(doc, yaml.MapItem{Key: "interface", Value: *r.Interface})
	}
	if r.From != nil {
		doc = append(doc, yaml.MapItem{Key: "from", Value: r.From.String()})
	}
	if r.To != nil {
		doc = append(doc, yaml.MapItem{Key: "to", Value: r.To.String()})
	}
	if r.Port != nil {
		doc = append(doc, yaml.MapItem{Key: "port", Value: int(*r.Port)})
	}
	if r.Proto != nil {
		doc = append(doc, yaml.MapItem{Key: "proto", Value: r.Proto.String()})
	}
	return doc, nil
}

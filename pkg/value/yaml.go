package value

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// MarshalYAML emits an ordered node tree so mappings keep their key order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode()
}

// UnmarshalYAML decodes a node tree, keeping mapping key order.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromYAMLNode converts a yaml.v3 node into a Value.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return Null(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)
	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			members = setMember(members, node.Content[i].Value, val)
		}
		return Value{kind: KindObject, members: members}, nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := FromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	default:
		return Value{}, fmt.Errorf("value: unsupported yaml node kind %d", node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	var decoded any
	if err := node.Decode(&decoded); err != nil {
		return Value{}, fmt.Errorf("value: decode yaml scalar at line %d: %w", node.Line, err)
	}
	switch typed := decoded.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case uint64:
		return Number(float64(typed)), nil
	case float64:
		if math.IsInf(typed, 0) || math.IsNaN(typed) {
			return Value{}, fmt.Errorf("%w: %s at line %d", ErrNonFiniteNumber, node.Value, node.Line)
		}
		return Number(typed), nil
	case string:
		return String(typed), nil
	case time.Time:
		return String(node.Value), nil
	default:
		return String(node.Value), nil
	}
}

func (v Value) yamlNode() (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}, nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("value: unsupported number %v", v.num)
		}
		tag := "!!float"
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e21 {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: FormatNumber(v.num)}, nil
	case KindBoolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}, nil
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			child, err := m.Value.yamlNode()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				child,
			)
		}
		return node, nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			child, err := item.yamlNode()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.kind)
	}
}

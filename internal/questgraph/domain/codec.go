package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeList decodes the mixed quest/achievement array using the "type"
// discriminator of each element.
type NodeList []Node

func newNode(kind NodeKind) (Node, error) {
	switch kind {
	case NodeQuest:
		return &Quest{}, nil
	case NodeAchievement:
		return &Achievement{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNodeKind, kind)
}

type nodeHead struct {
	Type NodeKind `json:"type" yaml:"type"`
}

func (l *NodeList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(NodeList, 0, len(raw))
	for i, r := range raw {
		var head nodeHead
		if err := json.Unmarshal(r, &head); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		n, err := newNode(head.Type)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if err := json.Unmarshal(r, n); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

func (l *NodeList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("nodes: expected a sequence, got line %d", value.Line)
	}
	out := make(NodeList, 0, len(value.Content))
	for i, item := range value.Content {
		var head nodeHead
		if err := item.Decode(&head); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		n, err := newNode(head.Type)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if err := item.Decode(n); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

// The marshalers put the discriminator back next to the variant's fields.

type questAlias Quest

func (q Quest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeKind `json:"type"`
		questAlias
	}{NodeQuest, questAlias(q)})
}

func (q Quest) MarshalYAML() (any, error) {
	return struct {
		Type       NodeKind `yaml:"type"`
		questAlias `yaml:",inline"`
	}{NodeQuest, questAlias(q)}, nil
}

type achievementAlias Achievement

func (a Achievement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeKind `json:"type"`
		achievementAlias
	}{NodeAchievement, achievementAlias(a)})
}

func (a Achievement) MarshalYAML() (any, error) {
	return struct {
		Type             NodeKind `yaml:"type"`
		achievementAlias `yaml:",inline"`
	}{NodeAchievement, achievementAlias(a)}, nil
}

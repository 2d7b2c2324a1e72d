package domain

import "fmt"

// Identified is anything external consumers address by a single string id.
type Identified interface {
	Identifier() string
}

// Node is either a *Quest or an *Achievement. The set is closed; branch on it
// with a type switch.
type Node interface {
	Identified
	Kind() NodeKind
	// GroupID is the category a renderer clusters the node under.
	GroupID() int
	Clone() Node
	isNode()
}

type Quest struct {
	ID           string `json:"id" yaml:"id"`
	Requirements string `json:"requirements" yaml:"requirements"`
	CategoryID   int    `json:"categoryId" yaml:"categoryId"`
	AchCatID     int    `json:"achCatId" yaml:"achCatId"`
	Levels       [2]int `json:"levels" yaml:"levels"`
	Noob         string `json:"noob,omitempty" yaml:"noob,omitempty"`
}

func (q *Quest) Identifier() string { return q.ID }
func (q *Quest) Kind() NodeKind     { return NodeQuest }
func (q *Quest) GroupID() int       { return q.AchCatID }
func (q *Quest) isNode()            {}

func (q *Quest) Clone() Node {
	c := *q
	return &c
}

type Achievement struct {
	ID           string `json:"id" yaml:"id"`
	Requirements string `json:"requirements" yaml:"requirements"`
	CategoryID   int    `json:"categoryId" yaml:"categoryId"`
	DispCatID    int    `json:"dispCatId" yaml:"dispCatId"`
	Order        int    `json:"order" yaml:"order"`
	Level        int    `json:"level" yaml:"level"`
	Noob         string `json:"noob,omitempty" yaml:"noob,omitempty"`
}

func (a *Achievement) Identifier() string { return a.ID }
func (a *Achievement) Kind() NodeKind     { return NodeAchievement }
func (a *Achievement) GroupID() int       { return a.DispCatID }
func (a *Achievement) isNode()            {}

func (a *Achievement) Clone() Node {
	c := *a
	return &c
}

// Edge says that having state Kind on From contributes to reaching To.
type Edge struct {
	From string       `json:"from" yaml:"from"`
	To   string       `json:"to" yaml:"to"`
	Kind RelationKind `json:"type" yaml:"type"`
}

// Identifier is "<from>-<to>-<kind>". It is derived on every call; edges are
// shared between filtered views and never carry cached state.
func (e Edge) Identifier() string {
	return fmt.Sprintf("%s-%s-%s", e.From, e.To, e.Kind)
}

type Category struct {
	ID    int `json:"id" yaml:"id"`
	Order int `json:"order" yaml:"order"`
}

type Almanax struct {
	Day          int    `json:"day" yaml:"day"`
	Month        int    `json:"month" yaml:"month"`
	ID           string `json:"id" yaml:"id"`
	ItemID       int    `json:"itemId" yaml:"itemId"`
	ItemImg      string `json:"itemImg" yaml:"itemImg"`
	ItemQuantity int    `json:"itemQuantity" yaml:"itemQuantity"`
}

type Graph struct {
	Nodes                 NodeList   `json:"nodes" yaml:"nodes"`
	Edges                 []Edge     `json:"edges" yaml:"edges"`
	AchievementCategories []Category `json:"achievementCategories" yaml:"achievementCategories"`
	QuestCategories       []Category `json:"questCategories" yaml:"questCategories"`
	Almanax               []Almanax  `json:"almanax" yaml:"almanax"`
	Titles                []int      `json:"titles" yaml:"titles"`
}

// NodeByID scans the node list. Use graph.Index for repeated lookups.
func (g *Graph) NodeByID(id string) (Node, error) {
	for _, n := range g.Nodes {
		if n.Identifier() == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
}

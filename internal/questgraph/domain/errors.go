package domain

import "errors"

var (
	ErrNodeNotFound        = errors.New("node not found")
	ErrUnknownNodeKind     = errors.New("unknown node type")
	ErrUnknownRelationKind = errors.New("unknown relation kind")
)

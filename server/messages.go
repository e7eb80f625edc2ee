package server

import "roomforge/generation"

// Request types accepted from clients
const (
	RequestGenerate   = "generate"
	RequestRegenerate = "regenerate"
	RequestNext       = "next"
	RequestSave       = "save"
	RequestLoad       = "load"
	RequestList       = "list"
)

// Reply types sent to clients
const (
	ReplySnapshot = "snapshot"
	ReplyLayouts  = "layouts"
	ReplySaved    = "saved"
	ReplyError    = "error"
)

// Request is one client message. Tier, MaxTier and Seed are read by
// generate; Name by save and load.
type Request struct {
	Type    string `json:"type"`
	Tier    int    `json:"tier,omitempty"`
	MaxTier int    `json:"maxTier,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Reply is one server message
type Reply struct {
	Type     string               `json:"type"`
	Snapshot *generation.Snapshot `json:"snapshot,omitempty"`
	Names    []string             `json:"names,omitempty"`
	Name     string               `json:"name,omitempty"`
	Error    string               `json:"error,omitempty"`
}

func errorReply(err error) Reply {
	return Reply{Type: ReplyError, Error: err.Error()}
}

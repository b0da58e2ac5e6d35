package models

import (
	"encoding/json"
	"fmt"
)

// Artifact is a compiled contract as emitted by Hardhat (hh-sol-artifact-1)
type Artifact struct {
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`

	// Path is the artifact file the record was loaded from
	Path string `json:"-"`

	// BuildInfo is resolved lazily through the sibling .dbg.json file
	BuildInfo *BuildInfo `json:"-"`
}

// FullyQualifiedName returns "sourceName:ContractName", the form explorers expect
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// HasBytecode reports whether the artifact can be deployed (interfaces and
// abstract contracts have none)
func (a *Artifact) HasBytecode() bool {
	return a.Bytecode != "" && a.Bytecode != "0x"
}

// BuildInfo holds the compiler input needed for source verification
type BuildInfo struct {
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// CompilerVersion returns the version string in the "v0.8.20+commit.a1b79de6" form
func (b *BuildInfo) CompilerVersion() string {
	if b.SolcLongVersion != "" {
		return "v" + b.SolcLongVersion
	}
	return "v" + b.SolcVersion
}

package contract

import (
	"fmt"

	"github.com/artem13815/architect/pkg/llm"
)

// Constraints are the fixed directives appended to every generation prompt.
type Constraints struct {
	ContractName    string
	SolidityVersion string
	Model           string
	AuditModel      string
}

// ComposeGenerate builds the generator request. User text is not validated;
// an empty prompt is forwarded as is.
func ComposeGenerate(prompt string, c Constraints) llm.Request {
	return llm.Request{
		Model:       c.Model,
		Question:    fmt.Sprintf("%s. Name the contract '%s'. Ensure Solidity %s.", prompt, c.ContractName, c.SolidityVersion),
		ChatHistory: llm.ChatHistoryOff,
	}
}

// ComposeAudit asks the auditor model to review source for vulnerabilities.
func ComposeAudit(source string, c Constraints) llm.Request {
	return llm.Request{
		Model:       c.AuditModel,
		Question:    "Audit this Solidity code for security flaws and vulnerabilities:\n\n" + source,
		ChatHistory: llm.ChatHistoryOff,
	}
}

package contract_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/architect/pkg/contract"
)

func TestExtractSource(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"fenced solidity block": {
			in:   "```solidity\ncontract X {}\n```",
			want: "contract X {}",
		},
		"text around the block is ignored": {
			in:   "Here you go:\n```solidity\npragma solidity ^0.8.20;\ncontract X {}\n```\nEnjoy!",
			want: "pragma solidity ^0.8.20;\ncontract X {}",
		},
		"only the first block is used": {
			in:   "```solidity\ncontract A {}\n```\n```solidity\ncontract B {}\n```",
			want: "contract A {}",
		},
		"no fences leaves text unchanged": {
			in:   "Here is code:\ncontract Y {}",
			want: "Here is code:\ncontract Y {}",
		},
		"generic fences are stripped": {
			in:   "```\ncontract Z {}\n```",
			want: "contract Z {}",
		},
		"other language tag falls back to stripping": {
			in:   "```js\nconsole.log(1)\n```",
			want: "js\nconsole.log(1)",
		},
		"unterminated solidity fence": {
			in:   "```solidity\ncontract W {}",
			want: "solidity\ncontract W {}",
		},
		"empty input": {
			in:   "",
			want: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := contract.ExtractSource(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, contract.ExtractSource(got), "extraction must be idempotent")
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", contract.Preview("abc", 5))
	assert.Equal(t, "ab...", contract.Preview("abcdef", 2))

	long := strings.Repeat("a", 199) + "привет"
	got := contract.Preview(long, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 199)+"п...", got)
	assert.Equal(t, "привет", contract.Preview("привет", 6))
}

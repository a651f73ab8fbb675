package entity

import "strings"

// CredentialChain は順序付きのAPIキー列です。
// 生成後は変更できず、並行するセクション間で安全に共有できます。
type CredentialChain struct {
	keys []string
}

// NewCredentialChain は空文字を除いたキーを与えられた順序で保持します。
func NewCredentialChain(keys ...string) CredentialChain {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return CredentialChain{keys: out}
}

// Len はキーの数を返します。
func (c CredentialChain) Len() int {
	return len(c.keys)
}

// Key は i 番目（0始まり）のキーを返します。
func (c CredentialChain) Key(i int) string {
	return c.keys[i]
}

// String はキーを伏せた表現を返します。
func (c CredentialChain) String() string {
	return "CredentialChain(" + strings.Repeat("*", len(c.keys)) + ")"
}

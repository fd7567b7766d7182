package pkg

import (
	"math/rand"
	"time"
)

var codeRunes = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

var codeRnd = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandString generates a join code for a new room.
func RandString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = codeRunes[codeRnd.Intn(len(codeRunes))]
	}
	return string(b)
}

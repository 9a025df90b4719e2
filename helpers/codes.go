package helpers

import (
	"math/rand"
	"time"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomCode(n int) string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = referralAlphabet[src.Intn(len(referralAlphabet))]
	}
	return string(b)
}

func GenerateReferralCode() string {
	return randomCode(8)
}

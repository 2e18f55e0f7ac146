package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifiesAndSaltsFreshly(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each hash must carry a fresh salt")
	require.NoError(t, ComparePassword(first, "pw1"))
	require.NoError(t, ComparePassword(second, "pw1"))
}

func TestComparePassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct", bcrypt.MinCost)
	require.NoError(t, err)

	require.Error(t, ComparePassword(hash, "wrong"))
}

func TestComparePassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.Error(t, ComparePassword("not-a-bcrypt-hash", "anything"))
	require.Error(t, ComparePassword("", "anything"))
}

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJavaIdentifier(t *testing.T) {
	valid := []string{"R", "Roar", "_x", "$R", "R2", "ÜberR"}
	invalid := []string{"", "2R", "class", "int", "my-R", "R.java", "_", "a b"}

	for _, s := range valid {
		assert.True(t, IsJavaIdentifier(s), "%q must be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, IsJavaIdentifier(s), "%q must be invalid", s)
	}
}

func TestIsJavaPackage(t *testing.T) {
	valid := []string{"", "test", "test.pkg", "com.example.app_1"}
	invalid := []string{".", "test.", ".test", "com..example", "com.1example", "com.example.new"}

	for _, s := range valid {
		assert.True(t, IsJavaPackage(s), "%q must be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, IsJavaPackage(s), "%q must be invalid", s)
	}
}

package symbols

import (
	"strings"
	"unicode"
)

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {}, "case": {},
	"catch": {}, "char": {}, "class": {}, "const": {}, "continue": {}, "default": {},
	"do": {}, "double": {}, "else": {}, "enum": {}, "extends": {}, "final": {},
	"finally": {}, "float": {}, "for": {}, "goto": {}, "if": {}, "implements": {},
	"import": {}, "instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {}, "return": {},
	"short": {}, "static": {}, "strictfp": {}, "super": {}, "switch": {}, "synchronized": {},
	"this": {}, "throw": {}, "throws": {}, "transient": {}, "try": {}, "void": {},
	"volatile": {}, "while": {}, "true": {}, "false": {}, "null": {}, "_": {},
}

// IsJavaIdentifier reports whether s could be used as a Java class name.
func IsJavaIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	if _, reserved := javaKeywords[s]; reserved {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// IsJavaPackage reports whether s is a valid dotted Java package name. Empty
// string (default package) is valid.
func IsJavaPackage(s string) bool {
	if len(s) == 0 {
		return true
	}
	for part := range strings.SplitSeq(s, ".") {
		if !IsJavaIdentifier(part) {
			return false
		}
	}
	return true
}

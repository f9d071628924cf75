// Package naming converts module identifiers such as "Acme_CheckoutSuccess"
// into the directory names used by the different Magento package layouts.
package naming

import (
	"strings"
	"unicode/utf8"
)

const (
	// Separator splits an identifier into its vendor and name segments.
	Separator = "_"

	// DefaultPlatform is the platform prefix used by vendor packages named
	// like "acme/magento2-checkout".
	DefaultPlatform = "magento2"

	// CompatibilityVendor prefixes the name of a compatibility module.
	CompatibilityVendor = "Hyva"
)

// Layout names one of the conventions a module directory can follow.
type Layout string

const (
	// LayoutAppCode is "Vendor/Name" below app/code.
	LayoutAppCode Layout = "app-code"
	// LayoutVendor is "vendor/name" below vendor.
	LayoutVendor Layout = "vendor"
	// LayoutVendorModule is "vendor/module-name" below vendor.
	LayoutVendorModule Layout = "vendor-module"
	// LayoutVendorPlatform is "vendor/magento2-name" below vendor.
	LayoutVendorPlatform Layout = "vendor-platform"
)

// Candidate is one relative directory a module may live in.
type Candidate struct {
	Layout Layout
	Path   string

	// Partial is set when the identifier lacks a name segment. Partial
	// paths point at a namespace directory rather than a module and are
	// not meant to be probed.
	Partial bool
}

// Segments splits an identifier on Separator. An empty identifier yields a
// single empty segment.
func Segments(identifier string) []string {
	return strings.Split(identifier, Separator)
}

// Kebab converts a mixed-case name to lowercase hyphen-separated form:
// a hyphen goes before every ASCII capital, one leading hyphen is dropped
// unless it is the whole result, and everything is lowercased.
//
//	Checkout        -> checkout
//	CheckoutSuccess -> checkout-success
//	ABTest          -> a-b-test
//	""              -> ""
func Kebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if strings.HasPrefix(out, "-") && utf8.RuneCountInString(out) > 1 {
		out = out[1:]
	}
	return strings.ToLower(out)
}

// Candidates returns the four relative paths probed for identifier, in
// precedence order. platform defaults to DefaultPlatform when empty.
func Candidates(identifier, platform string) []Candidate {
	if platform == "" {
		platform = DefaultPlatform
	}

	segments := Segments(identifier)
	vendor := strings.ToLower(segments[0])

	name := ""
	if len(segments) > 1 {
		name = Kebab(segments[1])
	}
	partial := name == "" || vendor == ""

	return []Candidate{
		{Layout: LayoutAppCode, Path: strings.Join(segments, "/"), Partial: partial},
		{Layout: LayoutVendor, Path: vendor + "/" + name, Partial: partial},
		{Layout: LayoutVendorModule, Path: vendor + "/module-" + name, Partial: partial},
		{Layout: LayoutVendorPlatform, Path: vendor + "/" + strings.ToLower(platform) + "-" + name, Partial: partial},
	}
}

// CompatibilityModuleNames returns the names a compatibility module for
// identifier may be installed under, most specific first: the name segments
// joined after the compatibility vendor ("Hyva_Checkout"), then every
// segment joined ("Hyva_AcmeCheckout") which is how published compatibility
// packages are named. A single-segment identifier only has the second form.
func CompatibilityModuleNames(identifier string) []string {
	segments := Segments(identifier)
	full := CompatibilityVendor + Separator + strings.Join(segments, "")
	if len(segments) < 2 {
		return []string{full}
	}
	short := CompatibilityVendor + Separator + strings.Join(segments[1:], "")
	return []string{short, full}
}

// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package configdb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tierNameRe         = regexp.MustCompile(`^[A-Z]{3,20}$`)
	organizationNameRe = regexp.MustCompile(`^[a-z0-9]{2,20}$`)
	productNameRe      = regexp.MustCompile(`^[a-z0-9-]{3,35}$`)
	tenantNameRe       = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)
)

// ValidateTierName checks that name is 3 to 20 upper case letters.
func ValidateTierName(name string) error {
	if !tierNameRe.MatchString(name) {
		return fmt.Errorf("invalid tier name %q: must be 3-20 upper case letters A-Z", name)
	}
	return nil
}

// ValidateOrganizationName checks an organization name or short name.
func ValidateOrganizationName(name string) error {
	if !organizationNameRe.MatchString(name) {
		return fmt.Errorf("invalid organization name %q: must be 2-20 lower case letters and digits", name)
	}
	return nil
}

// ValidateProductName checks a product name. The organization short name
// it is prefixed with is returned.
func ValidateProductName(name string) (shortName string, err error) {
	if !productNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid product name %q: must be 3-35 lower case letters, digits and dashes", name)
	}
	return orgPrefix("product", name)
}

// ValidateTenantName checks a tenant name. The organization short name it
// is prefixed with is returned.
func ValidateTenantName(name string) (shortName string, err error) {
	if !tenantNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid tenant name %q: must be 3-30 lower case letters, digits and dashes", name)
	}
	return orgPrefix("tenant", name)
}

func orgPrefix(kind, name string) (string, error) {
	prefix, _, found := strings.Cut(name, "-")
	if !found || prefix == "" {
		return "", fmt.Errorf("invalid %s name %q: must be prefixed with the organization short name and a dash", kind, name)
	}
	return prefix, nil
}

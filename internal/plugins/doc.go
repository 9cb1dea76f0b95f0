// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2023 HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// The plugins package holds the registry of deployable plugins known on
// this machine.
//
// Deployables are the services a Drift tier runs. A deployable is
// registered in a configuration database by name, and the registry tells
// the deployable commands which deployables are installed locally, at
// which version and with which tags. The registry is built by the caller,
// normally from the plugin blocks of the CLI configuration, and passed to
// the commands that need it.
package plugins

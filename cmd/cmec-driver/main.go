// SPDX-License-Identifier: BSD-3-Clause

// cmec-driver manages a local library of CMEC evaluation modules and runs
// their driver scripts against model data.
package main

func main() {
	Execute()
}

//go:build rp2350

package main

const chipName = "rp2350"

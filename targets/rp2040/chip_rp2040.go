//go:build rp2040

package main

const chipName = "rp2040"

package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(printHelp)

	assert.Contains(t, output, "Usage: scrawl")
	assert.Contains(t, output, "serve")
	assert.Contains(t, output, "group create")
	assert.Contains(t, output, "user delete")
}

func TestVersionOutput(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"scrawl", "version"}

	output := captureOutput(main)
	assert.Contains(t, output, cliVersion)
}

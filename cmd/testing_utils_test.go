package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/luacrypto/internal/configs"
)

// setupTestEnvironment points the user settings and the seed file at a
// temp directory and writes a config whose audit log lives there too.
// It returns the temp directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	original := configs.UserLuacryptoSettings
	t.Cleanup(func() {
		configs.UserLuacryptoSettings = original
		ResetGlobalState()
	})

	configs.UserLuacryptoSettings = &configs.UserSettings{
		ConfigDir:  filepath.Join(tempDir, "config"),
		DataDir:    filepath.Join(tempDir, "data"),
		ConfigFile: filepath.Join(tempDir, "config", "config.toml"),
	}
	t.Setenv("RANDFILE", filepath.Join(tempDir, "seed.rnd"))

	config := configs.DefaultConfig()
	config.Install.ID = configs.GenerateInstallID()
	config.Audit.Path = filepath.Join(tempDir, "data", "audit.jsonl")
	if err := configs.SaveConfig(configs.UserLuacryptoSettings.ConfigFile, config); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return tempDir
}

// executeCommand runs the CLI with args and returns what the command wrote
// to its stdout and stderr writers.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()

	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// captureOutput captures both stdout and stderr during function execution.
// Lua's print writes straight to os.Stdout, so script tests need this.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to copy stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

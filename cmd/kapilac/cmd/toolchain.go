package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// windowsGCCLocations lists the common install paths for a MinGW/MSYS2
// gcc on Windows, probed when no TCC is found and before gcc on PATH.
var windowsGCCLocations = []string{
	`C:\MinGW\bin\gcc.exe`,
	`C:\msys64\mingw64\bin\gcc.exe`,
	`C:\msys64\ucrt64\bin\gcc.exe`,
	`C:\TDM-GCC-64\bin\gcc.exe`,
}

// findCCompiler probes for a usable C compiler in the fixed order
// spec.md §6 names: a bundled Tiny C Compiler, then gcc at a common
// Windows install location, then gcc on PATH.
func findCCompiler() (string, error) {
	if path, err := exec.LookPath("tcc"); err == nil {
		return path, nil
	}

	if runtime.GOOS == "windows" {
		for _, candidate := range windowsGCCLocations {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	if path, err := exec.LookPath("gcc"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("no C toolchain found: tried tcc, common gcc locations, and gcc on PATH")
}

// compileAndRun builds cPath with the detected toolchain and runs the
// resulting binary, streaming its stdout/stderr through. Intermediate
// files are removed afterward unless keep is set.
func compileAndRun(cPath string, keep bool) error {
	compiler, err := findCCompiler()
	if err != nil {
		return err
	}

	binPath := strings.TrimSuffix(cPath, ".c")
	if binPath == cPath {
		binPath = cPath + ".out"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(binPath, ".exe") {
		binPath += ".exe"
	}

	build := exec.Command(compiler, cPath, "-o", binPath)
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("C toolchain build failed (%s): %w", compiler, err)
	}

	if !keep {
		defer os.Remove(cPath)
		defer os.Remove(binPath)
	}

	run := exec.Command(binPath)
	run.Stdin = os.Stdin
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	if err := run.Run(); err != nil {
		return fmt.Errorf("program execution failed: %w", err)
	}
	return nil
}

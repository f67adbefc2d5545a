package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// InitResourceLimits raises the open-file limit; batch runs over many scene
// documents can otherwise exhaust the default on macOS.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] failed to query open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] failed to raise open-file limit: %v", err)
	} else {
		log.Printf("[*] open-file limit raised to %d", rLimit.Cur)
	}
}

// FindLatestDocument returns the most recently modified scene document in
// dir.
func FindLatestDocument(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no scene documents found in %s", dir)
	}

	return latestFile, nil
}

// PrintStats reports elapsed wall time and memory usage of the run.
func PrintStats(start time.Time) {
	fmt.Printf("[*] total time: %s\n", time.Since(start).Round(time.Millisecond))

	p, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			fmt.Printf("[*] process memory: %.1f MB\n", float64(mi.RSS)/1024/1024)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Printf("[*] system memory: %.1f%% of %.1f GB used\n",
			vm.UsedPercent, float64(vm.Total)/1024/1024/1024)
	}
}

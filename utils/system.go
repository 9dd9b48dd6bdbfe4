package utils

import (
	"log"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessAlive reports whether pid refers to a running, non-zombie process.
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		log.Printf("WARN: Could not check process %d: %v", pid, err)
		return false
	}
	if !exists {
		return false
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	status, err := p.Status()
	if err != nil {
		return true
	}
	for _, s := range status {
		if s == process.Zombie {
			return false
		}
	}
	return true
}

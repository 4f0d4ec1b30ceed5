package watcher

import (
	"os"
	"path/filepath"
	"strings"
)

// FilesystemType is a best-effort classification of the filesystem a watched
// path lives on. Remote filesystems deliver unreliable inotify events, so the
// watcher falls back to polling for them.
type FilesystemType int

const (
	FSTypeUnknown FilesystemType = iota
	FSTypeLocal
	FSTypeNFS
	FSTypeSMB
	FSTypeSSHFS
	FSTypeFUSE
)

// String returns the lowercase name of the filesystem type.
func (t FilesystemType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeNFS:
		return "nfs"
	case FSTypeSMB:
		return "smb"
	case FSTypeSSHFS:
		return "sshfs"
	case FSTypeFUSE:
		return "fuse"
	default:
		return "unknown"
	}
}

// DetectFilesystemType classifies the filesystem holding path by matching the
// longest mount-point prefix in /proc/mounts. On platforms without
// /proc/mounts (or on any error) it returns FSTypeUnknown, which the watcher
// treats as local.
func DetectFilesystemType(path string) FilesystemType {
	if path == "" {
		return FSTypeUnknown
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return FSTypeUnknown
	}

	raw, err := os.ReadFile("/proc/mounts")
	if err != nil {
		return FSTypeUnknown
	}

	bestLen := -1
	best := FSTypeUnknown
	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		mountPoint, fsName := fields[1], fields[2]
		if !strings.HasPrefix(abs, mountPoint) {
			continue
		}
		if len(mountPoint) <= bestLen {
			continue
		}
		bestLen = len(mountPoint)
		best = classifyFilesystem(fsName)
	}
	return best
}

func classifyFilesystem(name string) FilesystemType {
	switch {
	case strings.HasPrefix(name, "nfs"):
		return FSTypeNFS
	case name == "cifs" || name == "smbfs" || name == "smb3":
		return FSTypeSMB
	case name == "fuse.sshfs":
		return FSTypeSSHFS
	case strings.HasPrefix(name, "fuse"):
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}

// isRemoteFilesystem reports whether the type should force polling mode.
func isRemoteFilesystem(t FilesystemType) bool {
	switch t {
	case FSTypeNFS, FSTypeSMB, FSTypeSSHFS, FSTypeFUSE:
		return true
	default:
		return false
	}
}

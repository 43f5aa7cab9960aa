package probe

import (
	"fmt"
	"os"
	"strings"
)

const hostMountsFaultCode = "AII3200"

// Classification tables for mount table entries and runtime sockets.
var (
	// Mount points that expose sensitive host paths when mounted into
	// a container.
	dangerousMountPoints = []string{
		"/",
		"/etc",
		"/boot",
		"/var/run",
		"/sys",
		"/proc",
		"/var/lib/docker",
		"/var/lib/containerd",
		"/run",
		"/usr",
		"/lib",
		"/bin",
		"/sbin",
		"/opt",
		"/home",
	}

	// Real disk filesystem types indicating a host root mount when the
	// source is a device file.
	hostRootFilesystems = []string{"ext4", "xfs", "btrfs", "zfs"}

	// Mount point prefixes under which host directories are commonly
	// shared into containers.
	writableMountPrefixes = []string{"/host", "/mnt", "/media"}

	// Name fragments of container runtime control sockets.
	runtimeSocketFragments = []string{
		"docker.sock",
		"containerd.sock",
		"crio.sock",
		"podman.sock",
		"lxd/unix.socket",
		"kubelet",
	}

	// Well-known socket locations checked independently of the mount
	// table; bind-mounted sockets do not always list distinctly.
	runtimeSocketPaths = []string{
		"/var/run/docker.sock",
		"/var/run/containerd/containerd.sock",
		"/var/run/crio/crio.sock",
		"/run/docker.sock",
		"/run/containerd/containerd.sock",
	}
)

type hostMountsProbe struct {
	mountsPath  string
	socketPaths []string
}

// NewHostMountsProbe returns a probe inspecting the process's mount
// table for host filesystem paths, runtime sockets and the host root
// filesystem.
func NewHostMountsProbe() *hostMountsProbe {
	return &hostMountsProbe{
		mountsPath:  "/proc/mounts",
		socketPaths: runtimeSocketPaths,
	}
}

func (p *hostMountsProbe) Name() string {
	return "host filesystem mounts"
}

func (p *hostMountsProbe) Category() Category {
	return CategoryHigh
}

func (p *hostMountsProbe) Exec() (Result, error) {
	result := &HostMountsResult{}

	// A missing or unreadable mount table reads as empty evidence.
	if contents, err := os.ReadFile(p.mountsPath); err == nil {
		for _, line := range strings.Split(string(contents), "\n") {
			classifyMountLine(line, result)
		}
	}

	for _, socketPath := range p.socketPaths {
		info, err := os.Stat(socketPath)
		if err != nil {
			continue
		}
		if info.Mode()&os.ModeSocket != 0 {
			result.SocketMounts = append(result.SocketMounts, fmt.Sprintf("socket access: %s", socketPath))
		}
	}

	result.DangerousMounts = dedupeAndSort(result.DangerousMounts)
	result.WritableHostMounts = dedupeAndSort(result.WritableHostMounts)
	result.SocketMounts = dedupeAndSort(result.SocketMounts)
	result.HostRootMounts = dedupeAndSort(result.HostRootMounts)

	return result, nil
}

// classifyMountLine evaluates one mount table line against all risk
// classes; a single line may contribute evidence to several of them.
// Lines with fewer than four fields are skipped.
func classifyMountLine(line string, result *HostMountsResult) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return
	}

	device, mountPoint, fsType, options := fields[0], fields[1], fields[2], fields[3]

	for _, dangerous := range dangerousMountPoints {
		if mountPoint == dangerous {
			result.DangerousMounts = append(result.DangerousMounts, fmt.Sprintf("%s -> %s", device, mountPoint))
		}
	}

	if strings.HasPrefix(device, "/dev/") &&
		isAnyOf(fsType, hostRootFilesystems) &&
		(mountPoint == "/" || strings.HasPrefix(mountPoint, "/host")) {
		result.HostRootMounts = append(result.HostRootMounts, fmt.Sprintf("%s -> %s (%s)", device, mountPoint, fsType))
	}

	if !hasMountOption(options, "ro") &&
		(hasAnyPrefix(mountPoint, writableMountPrefixes) ||
			(strings.HasPrefix(device, "/") && !strings.HasPrefix(device, "/dev/") && pathExists(device))) {
		result.WritableHostMounts = append(result.WritableHostMounts, fmt.Sprintf("%s -> %s (writable)", device, mountPoint))
	}

	for _, fragment := range runtimeSocketFragments {
		if strings.Contains(device, fragment) || strings.Contains(mountPoint, fragment) {
			result.SocketMounts = append(result.SocketMounts, fmt.Sprintf("%s -> %s", device, mountPoint))
			break
		}
	}
}

// hasMountOption tests discrete membership in a comma-separated mount
// option list. A plain substring match would misread option lists such
// as "rw,errors=remount-ro" as read-only.
func hasMountOption(options, flag string) bool {
	for _, option := range strings.Split(options, ",") {
		if option == flag {
			return true
		}
	}
	return false
}

// HostMountsResult holds the mount table entries collected by the host
// mounts probe, one collection per risk class.
type HostMountsResult struct {
	DangerousMounts    []string
	WritableHostMounts []string
	SocketMounts       []string
	HostRootMounts     []string
}

func (r *HostMountsResult) Success() bool {
	return len(r.DangerousMounts) == 0 &&
		len(r.SocketMounts) == 0 &&
		len(r.HostRootMounts) == 0 &&
		len(r.WritableHostMounts) == 0
}

func (r *HostMountsResult) Explain() string {
	var issues []string

	if len(r.DangerousMounts) > 0 {
		issues = append(issues, fmt.Sprintf("dangerous system paths mounted: %s",
			strings.Join(r.DangerousMounts, ", ")))
	}

	if len(r.HostRootMounts) > 0 {
		issues = append(issues, fmt.Sprintf("host root filesystem accessible: %s",
			strings.Join(r.HostRootMounts, ", ")))
	}

	if len(r.SocketMounts) > 0 {
		issues = append(issues, fmt.Sprintf("container runtime sockets accessible: %s",
			strings.Join(r.SocketMounts, ", ")))
	}

	if len(r.WritableHostMounts) > 0 {
		issues = append(issues, fmt.Sprintf("writable host directories mounted: %s",
			strings.Join(firstN(r.WritableHostMounts, 3), ", ")))
	}

	if len(issues) == 0 {
		return "container filesystem isolation is secure"
	}

	return fmt.Sprintf("container has dangerous host access: %s", strings.Join(issues, "; "))
}

func (r *HostMountsResult) AsString() string {
	return yesNo(r.Success())
}

func (r *HostMountsResult) FaultCode() string {
	return hostMountsFaultCode
}

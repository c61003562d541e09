//go:build !(darwin || linux || freebsd || openbsd || solaris || aix)

package system

// gopsutil has no load average here, or emulates one (windows); report N/A.
const loadAverageSupported = false

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package region

import "golang.org/x/sys/unix"

func allocate(size int) ([]byte, func([]byte) error, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}
	return buf, unix.Munmap, nil
}

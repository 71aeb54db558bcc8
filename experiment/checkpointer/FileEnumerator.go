package checkpointer

import (
	"fmt"
	"path/filepath"
)

// FilenameEnumerator returns a function which returns filenames in dir
// with an increasing counter suffix: dir/prefix-1.ext, dir/prefix-2.ext,
// and so on. The counter starts at start+1.
func FilenameEnumerator(start int, dir, prefix, ext string) func() string {
	i := start

	return func() string {
		i++
		return filepath.Join(dir, fmt.Sprintf("%v-%v%v", prefix, i, ext))
	}
}

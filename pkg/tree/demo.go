package tree

import "fmt"

// UsersTree returns the seven-node access-control tree:
//
//	        1
//	      /   \
//	     2     3
//	    / \   / \
//	   6   7 4   5
func UsersTree() *BinaryNode {
	left := NewBinary(2).SetChildren(NewBinary(6), NewBinary(7))
	right := NewBinary(3).SetChildren(NewBinary(4), NewBinary(5))
	return NewBinary(1).SetChildren(left, right)
}

// FilesTree returns a small directory tree:
//
//	dir1
//	├── dir2
//	│   └── file4
//	└── dir3
//	    ├── file5
//	    ├── file6
//	    └── dir4
//	        └── file7
func FilesTree() *Node {
	return New("dir1",
		New("dir2", New("file4")),
		New("dir3",
			New("file5"),
			New("file6"),
			New("dir4", New("file7")),
		),
	)
}

// LogsTree returns a chain of ten directories, dir1 to dir10, with files
// hung off the upper levels. Four of them end in ".log":
//
//	dir1/dir2/log1.log
//	dir1/dir2/dir3/log2.log
//	dir1/dir2/dir3/dir4/log3.log
//	dir1/dir2/dir3/dir4/dir5/log4.log
func LogsTree() *Node {
	root := New("dir1")
	dirs := []*Node{root}
	cur := root
	for i := 2; i <= 10; i++ {
		next := New(fmt.Sprintf("dir%d", i))
		cur.Add(next)
		dirs = append(dirs, next)
		cur = next
	}

	// dirs[i] is dir(i+1).
	dirs[1].Add(New("file1.txt"), New("log1.log"))
	dirs[2].Add(New("file2.doc"), New("log2.log"))
	dirs[3].Add(New("log3.log"))
	dirs[4].Add(New("log4.log"))
	return root
}

package sgf

// GameTree is one tree in an SGF file: a node sequence plus variations. The
// service only ever writes a single main line, but the parser accepts
// variations so externally produced records load too.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is one SGF node, a property set such as B[dd] or KM[7.5]. Properties
// may repeat (AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

// SGF is the root element of a record.
type SGF struct {
	Root *GameTree
}

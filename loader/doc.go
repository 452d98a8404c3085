// Package loader reads a single configuration file and resolves its extends
// chain.
//
// A file may name a base file with a top-level "extends" string. The path is
// taken relative to the directory of the file that contains it unless it is
// absolute. The base is loaded first (recursively following its own extends)
// and the extending file is deep-merged over it: keys set by the child win,
// keys the child leaves unset keep the base's value.
//
// Cycles are detected while walking the chain and reported as
// cfgerr.KindCyclicExtends errors naming every file involved.
package loader

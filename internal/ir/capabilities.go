package ir

// Assignable is implemented by node kinds that can be the target of set!:
// HostField, VarRef, Local and Binding. Whether a particular node is a
// legal target is recorded by the producer in its IsAssignable field.
type Assignable interface {
	Node
	Assignable() bool
}

// MetaTarget is implemented by the node kinds a WithMeta node may wrap:
// Fn, Map, Queue, Reify, Set and Vector.
type MetaTarget interface {
	Node
	metaTarget()
}

// Meta is the metadata attached to a node. It is either a *Const (metadata
// known at compile time) or a *Map (metadata with evaluated values).
type Meta interface {
	Node
	meta()
}

// TypeBase is an interface or base type named by deftype or reify:
// MaybeClass, MaybeHostForm or VarRef.
type TypeBase interface {
	Node
	typeBase()
}

// ClassRef names the exception class of a catch clause: MaybeClass or
// MaybeHostForm.
type ClassRef interface {
	Node
	classRef()
}

var (
	_ Assignable = (*HostField)(nil)
	_ Assignable = (*VarRef)(nil)
	_ Assignable = (*Local)(nil)
	_ Assignable = (*Binding)(nil)

	_ MetaTarget = (*Fn)(nil)
	_ MetaTarget = (*Map)(nil)
	_ MetaTarget = (*Queue)(nil)
	_ MetaTarget = (*Reify)(nil)
	_ MetaTarget = (*Set)(nil)
	_ MetaTarget = (*Vector)(nil)

	_ Meta = (*Const)(nil)
	_ Meta = (*Map)(nil)

	_ TypeBase = (*MaybeClass)(nil)
	_ TypeBase = (*MaybeHostForm)(nil)
	_ TypeBase = (*VarRef)(nil)

	_ ClassRef = (*MaybeClass)(nil)
	_ ClassRef = (*MaybeHostForm)(nil)
)

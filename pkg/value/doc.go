// Package value models the loosely typed values that flow between an actor
// schema, the editable form input and a run result. A Value is a tagged union
// over the JSON kinds (string, number, boolean, object, array, null). Objects
// keep their keys in insertion order so a schema decoded from the wire renders
// its fields in the order the server sent them.
//
// Values are immutable: constructors and accessors copy their backing slices,
// and With returns a new object instead of mutating the receiver.
package value

package kinworld

import (
	"fmt"

	"github.com/robokit/simenv/internal/simenv"
)

// own resolves a contract-level object handle back to this world's
// concrete object. Handles from another backend or another world yield
// false after a warning; queries never fabricate results across the
// backend boundary.
func (w *World) own(o simenv.Object) (*Object, bool) {
	switch v := o.(type) {
	case *Object:
		if v.world == w {
			return v, true
		}
	case *Robot:
		if v.world == w {
			return &v.Object, true
		}
	}
	w.logger.Warn("collision query with entity from a different backend or world", logPrefix)
	return nil, false
}

func (w *World) ownLink(l simenv.Link) (*Link, bool) {
	if v, ok := l.(*Link); ok && v.world == w {
		return v, true
	}
	w.logger.Warn("collision query with link from a different backend or world", logPrefix)
	return nil, false
}

// CheckCollision is the uniform world-level query entry point. With no
// others it self-checks first; with others it tests first against each
// element independently and returns the OR of the results with the union
// of the contact sets. Objects, robots and links are accepted; anything
// else fails the query.
func (w *World) CheckCollision(first simenv.Entity, others ...simenv.Entity) (bool, []simenv.Contact) {
	switch f := first.(type) {
	case simenv.Link:
		l, ok := w.ownLink(f)
		if !ok {
			return false, nil
		}
		if len(others) == 0 {
			return w.linkSelfCheck(l)
		}
		return w.linkVsEntities(l, others)
	case simenv.Object:
		o, ok := w.own(f)
		if !ok {
			return false, nil
		}
		if len(others) == 0 {
			return w.objectSelfCheck(o)
		}
		return w.objectVsEntities(o, others)
	default:
		w.logger.Warn(fmt.Sprintf("collision query on non-collidable entity type %s", first.Type()), logPrefix)
		return false, nil
	}
}

// linkPair tests two placed links and reports at most one contact.
func linkPair(a, b *Link) (bool, simenv.Contact) {
	if a.shape.kind == shapeNone || b.shape.kind == shapeNone {
		return false, simenv.Contact{}
	}
	hit, point, normal := collideShapes(a.worldShape(), b.worldShape())
	if !hit {
		return false, simenv.Contact{}
	}
	return true, simenv.Contact{
		ObjectA: a.obj.name,
		ObjectB: b.obj.name,
		LinkA:   a.name,
		LinkB:   b.name,
		Point:   point,
		Normal:  normal,
	}
}

// linkVsObjectCore appends every contact between one link and all links
// of an object.
func linkVsObjectCore(l *Link, o *Object, contacts []simenv.Contact) (bool, []simenv.Contact) {
	found := false
	for _, other := range o.links {
		if hit, c := linkPair(l, other); hit {
			found = true
			contacts = append(contacts, c)
		}
	}
	return found, contacts
}

// objectPair appends every contact between all link pairs of two objects.
func objectPair(a, b *Object, contacts []simenv.Contact) (bool, []simenv.Contact) {
	found := false
	for _, la := range a.links {
		var hit bool
		hit, contacts = linkVsObjectCore(la, b, contacts)
		found = found || hit
	}
	return found, contacts
}

// objectSelfCheck tests an object against everything else in the world.
func (w *World) objectSelfCheck(o *Object) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, other := range w.bodies() {
		if other == o {
			continue
		}
		var hit bool
		hit, contacts = objectPair(o, other, contacts)
		found = found || hit
	}
	return found, contacts
}

// linkSelfCheck tests a link against every object except its own; a
// link's self-check never reports contacts with sibling links.
func (w *World) linkSelfCheck(l *Link) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, other := range w.bodies() {
		if other == l.obj {
			continue
		}
		var hit bool
		hit, contacts = linkVsObjectCore(l, other, contacts)
		found = found || hit
	}
	return found, contacts
}

func (w *World) objectVsObject(a *Object, other simenv.Object) (bool, []simenv.Contact) {
	b, ok := w.own(other)
	if !ok {
		return false, nil
	}
	return objectPair(a, b, nil)
}

// objectVsObjects tests a against each element independently; the result
// is the OR over elements and the union of their contact sets, exactly as
// if CheckCollisionWith were called per element.
func (w *World) objectVsObjects(a *Object, others []simenv.Object) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, other := range others {
		b, ok := w.own(other)
		if !ok {
			continue
		}
		var hit bool
		hit, contacts = objectPair(a, b, contacts)
		found = found || hit
	}
	return found, contacts
}

func (w *World) linkVsLinks(l *Link, others []simenv.Link) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, other := range others {
		lb, ok := w.ownLink(other)
		if !ok {
			continue
		}
		if hit, c := linkPair(l, lb); hit {
			found = true
			contacts = append(contacts, c)
		}
	}
	return found, contacts
}

func (w *World) linkVsObjects(l *Link, others []simenv.Object) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, other := range others {
		b, ok := w.own(other)
		if !ok {
			continue
		}
		var hit bool
		hit, contacts = linkVsObjectCore(l, b, contacts)
		found = found || hit
	}
	return found, contacts
}

func (w *World) objectVsEntities(o *Object, others []simenv.Entity) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, e := range others {
		var hit bool
		var cs []simenv.Contact
		switch t := e.(type) {
		case simenv.Link:
			lb, ok := w.ownLink(t)
			if !ok {
				continue
			}
			for _, la := range o.links {
				if h, c := linkPair(la, lb); h {
					hit = true
					cs = append(cs, c)
				}
			}
		case simenv.Object:
			b, ok := w.own(t)
			if !ok {
				continue
			}
			hit, cs = objectPair(o, b, nil)
		default:
			w.logger.Warn(fmt.Sprintf("skipping non-collidable entity type %s in collision list", e.Type()), logPrefix)
			continue
		}
		found = found || hit
		contacts = append(contacts, cs...)
	}
	return found, contacts
}

func (w *World) linkVsEntities(l *Link, others []simenv.Entity) (bool, []simenv.Contact) {
	found := false
	var contacts []simenv.Contact
	for _, e := range others {
		switch t := e.(type) {
		case simenv.Link:
			lb, ok := w.ownLink(t)
			if !ok {
				continue
			}
			if hit, c := linkPair(l, lb); hit {
				found = true
				contacts = append(contacts, c)
			}
		case simenv.Object:
			b, ok := w.own(t)
			if !ok {
				continue
			}
			var hit bool
			hit, contacts = linkVsObjectCore(l, b, contacts)
			found = found || hit
		default:
			w.logger.Warn(fmt.Sprintf("skipping non-collidable entity type %s in collision list", e.Type()), logPrefix)
		}
	}
	return found, contacts
}

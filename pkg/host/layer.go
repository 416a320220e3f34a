// SPDX-License-Identifier: MPL-2.0

package host

// PushLayer places owner on top of the layer stack and returns its z-order,
// starting at 1. Pushing an owner already on the stack moves it to the top.
func (d *Document) PushLayer(owner ElementID) int {
	d.PopLayer(owner)
	d.layers = append(d.layers, owner)
	return len(d.layers)
}

// PopLayer removes owner from the layer stack.
func (d *Document) PopLayer(owner ElementID) {
	for i, l := range d.layers {
		if l == owner {
			d.layers = append(d.layers[:i], d.layers[i+1:]...)
			return
		}
	}
}

// Layer returns owner's z-order, or 0 when it is not on the stack.
func (d *Document) Layer(owner ElementID) int {
	for i, l := range d.layers {
		if l == owner {
			return i + 1
		}
	}
	return 0
}

// TopLayer returns the owner rendered above all others, or "".
func (d *Document) TopLayer() ElementID {
	if len(d.layers) == 0 {
		return ""
	}
	return d.layers[len(d.layers)-1]
}

package unirender

// comparisonEpsilon is the ±ε offset applied to build <= and >= out of the
// LessThan/GreaterThan primitives (§4.1).
const comparisonEpsilon = 1e-5

func socketType(s Socket) SocketType {
	if s.concrete {
		return s.value.Type
	}
	if s.node == nil {
		return Invalid
	}
	if d, ok := s.node.NodeDescriptor().socketDesc(s.socket); ok {
		return d.Value.Type
	}
	return Invalid
}

func socketVector(s Socket) (Vector3, bool) {
	v, ok := s.resolvedValue()
	if !ok {
		return Vector3{}, false
	}
	converted, ok := Convert(v, Vector)
	if !ok {
		return Vector3{}, false
	}
	vec, ok := converted.Raw()
	if !ok {
		return Vector3{}, false
	}
	vv, ok := vec.(Vector3)
	return vv, ok
}

func socketFloat(s Socket) (float32, bool) {
	v, ok := s.resolvedValue()
	if !ok {
		return 0, false
	}
	converted, ok := Convert(v, Float)
	if !ok {
		return 0, false
	}
	raw, ok := converted.Raw()
	if !ok {
		return 0, false
	}
	f, ok := raw.(float32)
	return f, ok
}

// arithmetic implements §4.1's operator dispatch for Add/Sub/Mul/Div/Mod/Pow.
// scalarFn/vecFn evaluate the concrete/concrete fast path; mathOp/vecMathOp
// name the synthesized node's operation for the node-reference path.
func arithmetic(a, b Socket, mathOp, vecMathOp string, scalarFn func(x, y float32) float32, vecFn func(x, y Vector3) Vector3) (Socket, error) {
	ta, tb := socketType(a), socketType(b)
	vector := IsVectorType(ta) || IsVectorType(tb)

	if a.concrete && b.concrete {
		if vector {
			va, aok := socketVector(a)
			vb, bok := socketVector(b)
			if !aok || !bok {
				return Socket{}, NewError(InvalidInput, "arithmetic", "operand not vector-convertible")
			}
			return Vector3Socket(vecFn(va, vb)), nil
		}
		fa, aok := socketFloat(a)
		fb, bok := socketFloat(b)
		if !aok || !bok {
			return Socket{}, NewError(InvalidInput, "arithmetic", "operand not float-convertible")
		}
		return Float32Socket(scalarFn(fa, fb)), nil
	}

	group := owningGroup(a, b)
	if group == nil {
		return Socket{}, NewError(InvalidInput, "arithmetic", "no owning group found for operand pair")
	}

	if !vector {
		n, err := group.AddMathNode(mathOp, a, b)
		if err != nil {
			return Socket{}, err
		}
		return n.Output(""), nil
	}

	if IsVectorType(ta) && IsVectorType(tb) {
		n, err := group.AddVectorMathNode(vecMathOp, a, b)
		if err != nil {
			return Socket{}, err
		}
		return n.Output(""), nil
	}

	// Mixed vector/scalar: broadcast the scalar through combine-xyz, then
	// NodeVectorMath, preserving operand order for non-commutative ops.
	scalar, vec := a, b
	scalarFirst := true
	if IsVectorType(ta) {
		scalar, vec = b, a
		scalarFirst = false
	}
	broadcast, err := group.combineBroadcast(scalar)
	if err != nil {
		return Socket{}, err
	}
	v1, v2 := vec, broadcast.Output("")
	if scalarFirst {
		v1, v2 = broadcast.Output(""), vec
	}
	n, err := group.AddVectorMathNode(vecMathOp, v1, v2)
	if err != nil {
		return Socket{}, err
	}
	return n.Output(""), nil
}

// combineBroadcast wires a scalar socket into all three inputs of a
// NodeTypeCombineXYZ node, producing a vector with all components equal to
// the scalar (§4.1 "combine-xyz broadcast").
func (g *GroupNodeDesc) combineBroadcast(s Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeCombineXYZ)
	if err != nil {
		return nil, err
	}
	for _, name := range [...]string{"x", "y", "z"} {
		if err := g.Link(s, n.Input(name)); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Add returns a + b.
func (a Socket) Add(b Socket) (Socket, error) {
	return arithmetic(a, b, MathAdd, VectorMathAdd,
		func(x, y float32) float32 { return x + y },
		func(x, y Vector3) Vector3 { return x.Add(y) })
}

// Sub returns a - b.
func (a Socket) Sub(b Socket) (Socket, error) {
	return arithmetic(a, b, MathSubtract, VectorMathSubtract,
		func(x, y float32) float32 { return x - y },
		func(x, y Vector3) Vector3 { return x.Sub(y) })
}

// Mul returns a * b.
func (a Socket) Mul(b Socket) (Socket, error) {
	return arithmetic(a, b, MathMultiply, VectorMathMultiply,
		func(x, y float32) float32 { return x * y },
		func(x, y Vector3) Vector3 { return x.Mul(y) })
}

// Div returns a / b.
func (a Socket) Div(b Socket) (Socket, error) {
	return arithmetic(a, b, MathDivide, VectorMathDivide,
		func(x, y float32) float32 { return x / y },
		func(x, y Vector3) Vector3 { return x.Div(y) })
}

// Mod returns a % b (scalar only; vector operands fall back to
// component-wise float mod via combine/vector-math the same as the other
// scalar/vector mixes).
func (a Socket) Mod(b Socket) (Socket, error) {
	return arithmetic(a, b, MathModulo, MathModulo,
		func(x, y float32) float32 {
			if y == 0 {
				return 0
			}
			m := x - y*float32(int64(x/y))
			return m
		},
		func(x, y Vector3) Vector3 {
			mod1 := func(n, d float32) float32 {
				if d == 0 {
					return 0
				}
				return n - d*float32(int64(n/d))
			}
			return Vector3{mod1(x.X, y.X), mod1(x.Y, y.Y), mod1(x.Z, y.Z)}
		})
}

// Pow returns a ^ b.
func (a Socket) Pow(b Socket) (Socket, error) {
	return arithmetic(a, b, MathPower, MathPower,
		powFloat32,
		func(x, y Vector3) Vector3 {
			return Vector3{powFloat32(x.X, y.X), powFloat32(x.Y, y.Y), powFloat32(x.Z, y.Z)}
		})
}

func powFloat32(x, y float32) float32 {
	// Integer exponent fast path keeps results exact for the common small
	// powers used in shader graphs; falls back to exp(y*ln(x)) otherwise.
	if y == float32(int32(y)) && y >= 0 && y < 16 {
		r := float32(1)
		for i := int32(0); i < int32(y); i++ {
			r *= x
		}
		return r
	}
	return expLog(x, y)
}

// compare implements §4.1's comparison operators. lt selects LessThan vs
// GreaterThan for the synthesized-node path; eps offsets the threshold for
// <=/>= (computed by the caller, zero for strict </>)."
func compare(a, b Socket, lt bool, eps float32) (Socket, error) {
	if a.concrete && b.concrete {
		fa, aok := socketFloat(a)
		fb, bok := socketFloat(b)
		if !aok || !bok {
			return Socket{}, NewError(InvalidInput, "compare", "operand not float-convertible")
		}
		adjustedB := fb + eps
		var result bool
		if lt {
			result = fa < adjustedB
		} else {
			result = fa > adjustedB
		}
		v := float32(0)
		if result {
			v = 1
		}
		return Float32Socket(v), nil
	}

	group := owningGroup(a, b)
	if group == nil {
		return Socket{}, NewError(InvalidInput, "compare", "no owning group found for operand pair")
	}
	threshold := b
	if eps != 0 {
		adjusted, err := b.Add(Float32Socket(eps))
		if err != nil {
			return Socket{}, err
		}
		threshold = adjusted
	}
	typeName := NodeTypeGreaterThan
	if lt {
		typeName = NodeTypeLessThan
	}
	n, err := group.AddNode(typeName)
	if err != nil {
		return Socket{}, err
	}
	if err := group.Link(a, n.Input("value1")); err != nil {
		return Socket{}, err
	}
	if err := group.Link(threshold, n.Input("value2")); err != nil {
		return Socket{}, err
	}
	return n.Output(""), nil
}

// Lt returns a scalar mask for a < b.
func (a Socket) Lt(b Socket) (Socket, error) { return compare(a, b, true, 0) }

// Lte returns a scalar mask for a <= b (a < b+ε).
func (a Socket) Lte(b Socket) (Socket, error) { return compare(a, b, true, comparisonEpsilon) }

// Gt returns a scalar mask for a > b.
func (a Socket) Gt(b Socket) (Socket, error) { return compare(a, b, false, 0) }

// Gte returns a scalar mask for a >= b (a > b-ε).
func (a Socket) Gte(b Socket) (Socket, error) { return compare(a, b, false, -comparisonEpsilon) }

package types

import "testing"

func TestEqual_MatchesOnBaseClassAndDims(t *testing.T) {
	a, _ := ToArrayType(Int(), []int{3, 4})
	b, _ := ToArrayType(Int(), []int{3, 4})
	c, _ := ToArrayType(Int(), []int{3, 5})
	if !a.Equal(b) {
		t.Fatalf("expected identical array types to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differing dimensions to be unequal")
	}
	if Int().Equal(Flt()) {
		t.Fatalf("expected Integer and Float to be unequal")
	}
	if !ClassType("Shape").Equal(ClassType("Shape")) {
		t.Fatalf("expected identical class types to be equal")
	}
	if ClassType("Shape").Equal(ClassType("Circle")) {
		t.Fatalf("expected different class names to be unequal")
	}
}

func TestToArrayType_RejectsEmptyDimsAndVoid(t *testing.T) {
	if _, err := ToArrayType(Int(), nil); err == nil {
		t.Fatalf("expected an error for an empty dimension list")
	}
	if _, err := ToArrayType(Vd(), []int{1}); err == nil {
		t.Fatalf("expected an error for an array of void")
	}
}

func TestToSimpleType_StripsDims(t *testing.T) {
	arr, _ := ToArrayType(Flt(), []int{2})
	simple := ToSimpleType(arr)
	if simple.IsArray() || !simple.Equal(Flt()) {
		t.Fatalf("expected ToSimpleType to strip dims, got %s", simple)
	}
}

func TestType_String(t *testing.T) {
	arr, _ := ToArrayType(Int(), []int{3, 4})
	if got := arr.String(); got != "integer[3][4]" {
		t.Errorf("String() = %q, want %q", got, "integer[3][4]")
	}
	if got := ClassType("Shape").String(); got != "Shape" {
		t.Errorf("String() = %q, want %q", got, "Shape")
	}
}

func TestSignature_EqualDistinguishesOverloads(t *testing.T) {
	s1 := Signature{Params: []Type{Int()}, Return: Int()}
	s2 := Signature{Params: []Type{Flt()}, Return: Flt()}
	s3 := Signature{Params: []Type{Int()}, Return: Int()}
	if s1.Equal(s2) {
		t.Fatalf("expected differing parameter types to be unequal signatures")
	}
	if !s1.Equal(s3) {
		t.Fatalf("expected identical signatures to be equal")
	}
}

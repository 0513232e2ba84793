/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// MaxSupportedMajorVersion is the highest class-file major version this
// parser accepts. Class files compiled for newer releases fail parsing
// with UNSUPPORTED_VERSION rather than being silently misread.
const MaxSupportedMajorVersion = 66 // Java SE 22

// Parse decodes rawBytes into a ClassFile. It does not interpret the
// payload of any attribute beyond the raw {name, length, info} shape --
// lifting the Code attribute is ParseCodeAttribute's job.
func Parse(rawBytes []byte) (*ClassFile, error) {
	r := NewByteReader(rawBytes)
	cf := &ClassFile{}

	magic, err := r.U4()
	if err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, cfe(ErrBadMagic, 0, "not a class file")
	}
	cf.Magic = magic

	if cf.MinorVersion, err = r.U2(); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = r.U2(); err != nil {
		return nil, err
	}
	if cf.MajorVersion > MaxSupportedMajorVersion {
		return nil, cfe(ErrUnsupportedVersion, r.Pos(),
			"class file major version is newer than this VM supports")
	}

	cpCount, err := r.U2()
	if err != nil {
		return nil, err
	}

	cp, err := parseConstantPool(r, int(cpCount))
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	if cf.AccessFlags, err = r.U2(); err != nil {
		return nil, err
	}
	if cf.ThisClass, err = r.U2(); err != nil {
		return nil, err
	}
	if cf.SuperClass, err = r.U2(); err != nil {
		return nil, err
	}

	ifaceCount, err := r.U2()
	if err != nil {
		return nil, err
	}
	cf.Interfaces = make([]uint16, ifaceCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = r.U2(); err != nil {
			return nil, err
		}
	}

	if cf.Fields, err = parseFields(r); err != nil {
		return nil, err
	}
	if cf.Methods, err = parseMethods(r); err != nil {
		return nil, err
	}
	if cf.Attributes, err = parseRawAttributes(r); err != nil {
		return nil, err
	}

	return cf, nil
}

// memberShape is the on-disk shape shared by field_info and method_info:
// access flags, a name index, a descriptor index, and a list of raw
// attributes. parseFields and parseMethods both read this shape and
// differ only in the Go type they wrap it in.
type memberShape struct {
	accessFlags uint16
	nameIdx     uint16
	descIdx     uint16
	attrs       []RawAttribute
}

// parseMemberShapes reads a {count, entries[count]} list off r.
func parseMemberShapes(r *ByteReader) ([]memberShape, error) {
	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	shapes := make([]memberShape, 0, count)
	for i := 0; i < int(count); i++ {
		accessFlags, err := r.U2()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		attrs, err := parseRawAttributes(r)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, memberShape{
			accessFlags: accessFlags,
			nameIdx:     nameIdx,
			descIdx:     descIdx,
			attrs:       attrs,
		})
	}
	return shapes, nil
}

// parseFields reads the fields_count/fields section.
func parseFields(r *ByteReader) ([]FieldInfo, error) {
	shapes, err := parseMemberShapes(r)
	if err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, len(shapes))
	for i, s := range shapes {
		fields[i] = FieldInfo{
			AccessFlags:     s.accessFlags,
			NameIndex:       s.nameIdx,
			DescriptorIndex: s.descIdx,
			Attributes:      s.attrs,
		}
	}
	return fields, nil
}

// parseMethods reads the methods_count/methods section -- method_info
// has the identical on-disk shape as field_info.
func parseMethods(r *ByteReader) ([]MethodInfo, error) {
	shapes, err := parseMemberShapes(r)
	if err != nil {
		return nil, err
	}
	methods := make([]MethodInfo, len(shapes))
	for i, s := range shapes {
		methods[i] = MethodInfo{
			AccessFlags:     s.accessFlags,
			NameIndex:       s.nameIdx,
			DescriptorIndex: s.descIdx,
			Attributes:      s.attrs,
		}
	}
	return methods, nil
}

// parseRawAttributes reads an {attribute_count, attributes[count]} list,
// where each attribute is the opaque {name_idx:u2 length:u4 info[length]}
// shape shared by field, method, class, and (nested) Code attributes.
func parseRawAttributes(r *ByteReader) ([]RawAttribute, error) {
	count, err := r.U2()
	if err != nil {
		return nil, err
	}
	attrs := make([]RawAttribute, 0, count)
	for i := 0; i < int(count); i++ {
		nameIdx, err := r.U2()
		if err != nil {
			return nil, err
		}
		length, err := r.U4()
		if err != nil {
			return nil, err
		}
		info, err := r.Bytes(int(length))
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, RawAttribute{NameIndex: nameIdx, Length: length, Info: info})
	}
	return attrs, nil
}

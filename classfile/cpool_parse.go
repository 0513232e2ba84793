/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "strconv"

// parseConstantPool reads cpCount-1 entries (indices 1..cpCount-1) off r.
// Index 0 is left as the reserved TagNone placeholder. After every
// Long/Double entry the following slot is also left TagNone and skipped
// by the loop, matching the class-file format's historical quirk of
// having 8-byte constants occupy two CP slots.
func parseConstantPool(r *ByteReader, cpCount int) (*ConstantPool, error) {
	if cpCount < 1 {
		return nil, cfe(ErrCPTag, r.Pos(), "constant pool count must be at least 1")
	}
	cp := newConstantPool(cpCount)

	for i := 1; i < cpCount; i++ {
		tagByte, err := r.U1()
		if err != nil {
			return nil, err
		}
		tag := Tag(tagByte)

		switch tag {
		case TagUtf8:
			length, err := r.U2()
			if err != nil {
				return nil, err
			}
			raw, err := r.Bytes(int(length))
			if err != nil {
				return nil, err
			}
			withNul := make([]byte, len(raw)+1)
			copy(withNul, raw)
			cp.slots[i] = cpSlot{tag: TagUtf8, slot: len(cp.utf8s)}
			cp.utf8s = append(cp.utf8s, utf8Entry{content: string(raw), bytes: withNul})

		case TagInteger:
			v, err := r.U4()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagInteger, slot: len(cp.integers)}
			cp.integers = append(cp.integers, v)

		case TagFloat:
			v, err := r.U4()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagFloat, slot: len(cp.floats)}
			cp.floats = append(cp.floats, v)

		case TagLong:
			hi, err := r.U4()
			if err != nil {
				return nil, err
			}
			lo, err := r.U4()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagLong, slot: len(cp.longsHi)}
			cp.longsHi = append(cp.longsHi, hi)
			cp.longsLo = append(cp.longsLo, lo)
			if i+1 >= cpCount {
				return nil, cfe(ErrCPTag, r.Pos(), "Long entry at index "+strconv.Itoa(i)+" has no room for its padding slot")
			}
			i++ // the following slot stays TagNone

		case TagDouble:
			hi, err := r.U4()
			if err != nil {
				return nil, err
			}
			lo, err := r.U4()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagDouble, slot: len(cp.doublesHi)}
			cp.doublesHi = append(cp.doublesHi, hi)
			cp.doublesLo = append(cp.doublesLo, lo)
			if i+1 >= cpCount {
				return nil, cfe(ErrCPTag, r.Pos(), "Double entry at index "+strconv.Itoa(i)+" has no room for its padding slot")
			}
			i++

		case TagClass:
			nameIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagClass, slot: len(cp.classNameIdx)}
			cp.classNameIdx = append(cp.classNameIdx, nameIdx)

		case TagString:
			strIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagString, slot: len(cp.stringIdx)}
			cp.stringIdx = append(cp.stringIdx, strIdx)

		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			classIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			entry := refEntry{classIndex: classIdx, nameAndTypeIdx: natIdx}
			switch tag {
			case TagFieldref:
				cp.slots[i] = cpSlot{tag: tag, slot: len(cp.fieldRefs)}
				cp.fieldRefs = append(cp.fieldRefs, entry)
			case TagMethodref:
				cp.slots[i] = cpSlot{tag: tag, slot: len(cp.methodRefs)}
				cp.methodRefs = append(cp.methodRefs, entry)
			case TagInterfaceMethodref:
				cp.slots[i] = cpSlot{tag: tag, slot: len(cp.interfaceRefs)}
				cp.interfaceRefs = append(cp.interfaceRefs, entry)
			}

		case TagNameAndType:
			nameIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			descIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagNameAndType, slot: len(cp.nameAndTypes)}
			cp.nameAndTypes = append(cp.nameAndTypes, natEntry{nameIndex: nameIdx, descIndex: descIdx})

		case TagMethodHandle:
			kind, err := r.U1()
			if err != nil {
				return nil, err
			}
			refIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagMethodHandle, slot: len(cp.methodHandles)}
			cp.methodHandles = append(cp.methodHandles, methodHandleEntry{kind: kind, refIndex: refIdx})

		case TagMethodType:
			descIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			cp.slots[i] = cpSlot{tag: TagMethodType, slot: len(cp.methodTypeDesc)}
			cp.methodTypeDesc = append(cp.methodTypeDesc, descIdx)

		case TagDynamic, TagInvokeDynamic:
			bootstrapIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.U2()
			if err != nil {
				return nil, err
			}
			entry := dynamicEntry{bootstrapIndex: bootstrapIdx, nameAndTypeIdx: natIdx}
			if tag == TagDynamic {
				cp.slots[i] = cpSlot{tag: tag, slot: len(cp.dynamics)}
				cp.dynamics = append(cp.dynamics, entry)
			} else {
				cp.slots[i] = cpSlot{tag: tag, slot: len(cp.invokeDynamics)}
				cp.invokeDynamics = append(cp.invokeDynamics, entry)
			}

		default:
			return nil, cfe(ErrCPTag, r.Pos()-1, "unknown constant pool tag "+strconv.Itoa(int(tagByte))+" at entry "+strconv.Itoa(i))
		}
	}

	return cp, nil
}

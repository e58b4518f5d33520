package isbn

// Checksum computes the check character for body in the target format.
// body is the 9 (ISBN-10) or 12 (ISBN-13) symbols preceding the check character.
// Characters that are not decimal digits count as 0.
func Checksum(body string, f Format) byte {
	sum := 0
	for i := 0; i < len(body); i++ {
		d := digitValue(body[i])
		switch f {
		case ISBN10:
			sum += d * (10 - i)
		case ISBN13:
			if i%2 == 0 {
				sum += d
			} else {
				sum += d * 3
			}
		}
	}

	switch f {
	case ISBN10:
		check := 11 - sum%11
		switch check {
		case 11:
			return '0'
		case 10:
			return 'X'
		}
		return byte('0' + check)
	case ISBN13:
		check := 10 - sum%10
		if check == 10 {
			return '0'
		}
		return byte('0' + check)
	}
	return 0
}

func digitValue(c byte) int {
	if c < '0' || c > '9' {
		return 0
	}
	return int(c - '0')
}

package pod

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// encodeFormat writes the canonical format advertisement through b.
func encodeFormat(b *Builder) error {
	f, err := b.PushObject(ObjectFormat, ParamEnumFormat)
	if err != nil {
		return err
	}
	b.Prop(KeyMediaType, 0)
	b.WriteID(MediaTypeVideo)
	b.Prop(KeyMediaSubtype, 0)
	b.WriteID(MediaSubtypeRaw)
	b.Prop(KeyVideoFormat, 0)
	b.WriteID(VideoFormatBGRA)
	b.Prop(KeyVideoSize, 0)
	b.WriteRectangle(640, 480)
	b.Prop(KeyVideoRate, 0)
	b.WriteFraction(30, 1)
	return b.Pop(f)
}

type BuilderTestSuite struct {
	suite.Suite
}

func TestBuilder(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func (s *BuilderTestSuite) TestSingleIDObjectLayout() {
	b := NewBuilder(64)
	f, err := b.PushObject(ObjectFormat, ParamEnumFormat)
	s.Require().NoError(err)
	s.Require().NoError(b.Prop(KeyMediaType, 0))
	s.Require().NoError(b.WriteID(MediaTypeVideo))
	s.Require().NoError(b.Pop(f))

	data, err := b.Finish()
	s.Require().NoError(err)
	s.Require().Len(data, 32)

	want := make([]byte, 32)
	Order.PutUint32(want[0:], 28) // size covers everything after the size field
	Order.PutUint32(want[4:], ObjectFormat)
	Order.PutUint32(want[8:], ParamEnumFormat)
	Order.PutUint32(want[12:], KeyMediaType)
	Order.PutUint32(want[16:], 0)
	Order.PutUint32(want[20:], TagID)
	Order.PutUint32(want[24:], 4)
	Order.PutUint32(want[28:], MediaTypeVideo)
	s.Assert().Equal(want, data)
}

func (s *BuilderTestSuite) TestValuePadding() {
	b := NewBuilder(128)
	f, err := b.PushObject(ObjectFormat, ParamEnumFormat)
	s.Require().NoError(err)
	s.Require().NoError(b.Prop(KeyMediaType, 0))
	s.Require().NoError(b.WriteID(MediaTypeVideo))
	s.Require().NoError(b.Prop(KeyMediaSubtype, 0))
	s.Require().NoError(b.WriteID(MediaSubtypeRaw))
	s.Require().NoError(b.Pop(f))

	data, err := b.Finish()
	s.Require().NoError(err)

	// The second identifier payload ends at offset 52 and is padded to the
	// next 8-byte boundary; the size field counts the padding.
	s.Require().Len(data, 56)
	s.Assert().EqualValues(52, Order.Uint32(data[0:]))
	s.Assert().Equal([]byte{0, 0, 0, 0}, data[52:56])
}

func (s *BuilderTestSuite) TestGrowthMatchesPresized() {
	// Start far below the message size so encoding crosses several growth
	// steps, then compare against a buffer that never needs to grow.
	grown := NewBuilder(16)
	s.Require().NoError(encodeFormat(grown))
	grownBytes, err := grown.Finish()
	s.Require().NoError(err)

	presized := NewBuilder(4096)
	s.Require().NoError(encodeFormat(presized))
	presizedBytes, err := presized.Finish()
	s.Require().NoError(err)

	s.Assert().Equal(presizedBytes, grownBytes)
}

func (s *BuilderTestSuite) TestFrameDiscipline() {
	s.T().Run("PopNotInnermost", func(t *testing.T) {
		b := NewBuilder(256)
		outer, err := b.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)
		_, err = b.PushObject(ObjectParamBuffers, ParamBuffers)
		require.NoError(t, err)

		assert.ErrorIs(t, b.Pop(outer), ErrFrameMismatch)
		_, err = b.Finish()
		assert.ErrorIs(t, err, ErrFrameMismatch)
	})

	s.T().Run("PopForeignFrame", func(t *testing.T) {
		b := NewBuilder(64)
		other := NewBuilder(64)
		f, err := other.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)

		_, err = b.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)
		assert.ErrorIs(t, b.Pop(f), ErrFrameMismatch)
	})

	s.T().Run("FinishWithOpenFrame", func(t *testing.T) {
		b := NewBuilder(64)
		_, err := b.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)

		_, err = b.Finish()
		assert.ErrorIs(t, err, ErrUnclosedFrame)
	})

	s.T().Run("PropOutsideObject", func(t *testing.T) {
		b := NewBuilder(64)
		assert.ErrorIs(t, b.Prop(KeyMediaType, 0), ErrNoOpenFrame)
	})
}

func (s *BuilderTestSuite) TestFixedOverflowLatches() {
	b := NewFixedBuilder(make([]byte, 16))
	f, err := b.PushObject(ObjectFormat, ParamEnumFormat)
	s.Require().NoError(err)

	// The property header no longer fits; the failure latches and every
	// later operation is a no-op reporting the same error.
	s.Require().ErrorIs(b.Prop(KeyMediaType, 0), ErrOverflow)
	s.Assert().ErrorIs(b.WriteID(MediaTypeVideo), ErrOverflow)
	s.Assert().ErrorIs(b.Pop(f), ErrOverflow)

	_, err = b.Finish()
	s.Assert().ErrorIs(err, ErrOverflow)
}

func (s *BuilderTestSuite) TestFailedGrowthHook() {
	hookErr := errors.New("backing store exhausted")
	calls := 0
	b := NewBuilderWithOverflow(make([]byte, 16), func(size int) ([]byte, error) {
		calls++
		return nil, hookErr
	})

	s.Assert().Error(encodeFormat(b))
	_, err := b.Finish()
	s.Assert().ErrorIs(err, ErrOverflow)
	s.Assert().Equal(1, calls, "latched builder must not re-invoke the hook")
}

func (s *BuilderTestSuite) TestInvalidValues() {
	s.T().Run("ZeroRectangle", func(t *testing.T) {
		b := NewBuilder(64)
		_, err := b.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)
		require.NoError(t, b.Prop(KeyVideoSize, 0))
		assert.ErrorIs(t, b.WriteRectangle(0, 480), ErrInvalidValue)
	})

	s.T().Run("ZeroDenominator", func(t *testing.T) {
		b := NewBuilder(64)
		_, err := b.PushObject(ObjectFormat, ParamEnumFormat)
		require.NoError(t, err)
		require.NoError(t, b.Prop(KeyVideoRate, 0))
		assert.ErrorIs(t, b.WriteFraction(30, 0), ErrInvalidValue)
	})
}

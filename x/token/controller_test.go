package token

import (
	"math"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Token controller moves balances between accounts", t, func() {
		db := store.MemStore()
		ctrl := NewController()

		minter := weavetest.NewCondition().Address()
		alice := weavetest.NewCondition().Address()
		bob := weavetest.NewCondition().Address()

		for _, ticker := range []string{"XTK", "YTK"} {
			err := ctrl.CreateToken(db, &Token{
				Metadata:      &weave.Metadata{Schema: 1},
				Ticker:        ticker,
				Name:          "test token " + ticker,
				MintAuthority: minter,
			})
			So(err, ShouldBeNil)
		}

		aliceX, err := ctrl.CreateAccount(db, alice, "XTK")
		So(err, ShouldBeNil)
		So(aliceX, ShouldResemble, weavetest.SequenceID(1))
		bobX, err := ctrl.CreateAccount(db, bob, "XTK")
		So(err, ShouldBeNil)
		bobY, err := ctrl.CreateAccount(db, bob, "YTK")
		So(err, ShouldBeNil)

		So(ctrl.Mint(db, aliceX, 500, minter), ShouldBeNil)

		balance := func(id []byte) uint64 {
			a, err := ctrl.Account(db, id)
			So(err, ShouldBeNil)
			return a.Balance
		}

		Convey("The owner can transfer", func() {
			So(ctrl.Transfer(db, aliceX, bobX, 200, alice), ShouldBeNil)
			So(balance(aliceX), ShouldEqual, 300)
			So(balance(bobX), ShouldEqual, 200)

			Convey("and can empty the account", func() {
				So(ctrl.Transfer(db, aliceX, bobX, 300, alice), ShouldBeNil)
				So(balance(aliceX), ShouldEqual, 0)
				So(balance(bobX), ShouldEqual, 500)
			})
		})

		Convey("Nobody else can transfer", func() {
			err := ctrl.Transfer(db, aliceX, bobX, 200, bob)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			So(balance(aliceX), ShouldEqual, 500)
		})

		Convey("Balance cannot go below zero", func() {
			err := ctrl.Transfer(db, aliceX, bobX, 501, alice)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			So(balance(aliceX), ShouldEqual, 500)
			So(balance(bobX), ShouldEqual, 0)
		})

		Convey("Zero transfer is rejected", func() {
			err := ctrl.Transfer(db, aliceX, bobX, 0, alice)
			So(errors.ErrInvalidAmount.Is(err), ShouldBeTrue)
		})

		Convey("Tokens of a different kind cannot be mixed", func() {
			err := ctrl.Transfer(db, aliceX, bobY, 10, alice)
			So(ErrCurrencyMismatch.Is(err), ShouldBeTrue)
		})

		Convey("Transfer to the same account is rejected", func() {
			err := ctrl.Transfer(db, aliceX, aliceX, 10, alice)
			So(errors.ErrInvalidInput.Is(err), ShouldBeTrue)
		})

		Convey("Unknown accounts are not found", func() {
			err := ctrl.Transfer(db, aliceX, weavetest.SequenceID(99), 10, alice)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Overflow is rejected", func() {
			So(ctrl.Mint(db, bobX, math.MaxUint64, minter), ShouldBeNil)
			err := ctrl.Transfer(db, aliceX, bobX, 1, alice)
			So(errors.ErrOverflow.Is(err), ShouldBeTrue)
			So(balance(aliceX), ShouldEqual, 500)
		})

		Convey("Ownership can be handed over", func() {
			So(ctrl.SetOwner(db, aliceX, bob, alice), ShouldBeNil)
			a, err := ctrl.Account(db, aliceX)
			So(err, ShouldBeNil)
			So(a.Owner, ShouldResemble, bob)
			So(a.Balance, ShouldEqual, 500)

			Convey("and the previous owner loses control", func() {
				err := ctrl.Transfer(db, aliceX, bobX, 1, alice)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				So(ctrl.Transfer(db, aliceX, bobX, 1, bob), ShouldBeNil)
			})
		})

		Convey("Only the owner can hand over an account", func() {
			err := ctrl.SetOwner(db, aliceX, bob, bob)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Only the mint authority can mint", func() {
			err := ctrl.Mint(db, aliceX, 1, alice)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			So(balance(aliceX), ShouldEqual, 500)
		})

		Convey("A ticker can be registered once", func() {
			err := ctrl.CreateToken(db, &Token{
				Metadata:      &weave.Metadata{Schema: 1},
				Ticker:        "XTK",
				Name:          "another",
				MintAuthority: alice,
			})
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})

		Convey("Accounts require an existing token", func() {
			_, err := ctrl.CreateAccount(db, alice, "NOPE")
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}
